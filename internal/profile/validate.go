package profile

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/studentos/internal/catalog"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("background", func(fl validator.FieldLevel) bool {
			return catalog.Background(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("roletype", func(fl validator.FieldLevel) bool {
			return contains(RoleTypes, RoleType(fl.Field().String()))
		})
		_ = v.RegisterValidation("workmode", func(fl validator.FieldLevel) bool {
			return contains(WorkModes, WorkMode(fl.Field().String()))
		})
		_ = v.RegisterValidation("learningstyle", func(fl validator.FieldLevel) bool {
			return contains(LearningStyles, LearningStyle(fl.Field().String()))
		})
		validate = v
	})
	return validate
}

// Validate checks the structural invariants of a profile. An empty skills
// list is valid: it is the incomplete state, not an error.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}
	if err := validatorInstance().Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

func contains[T comparable](items []T, v T) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
