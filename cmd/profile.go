package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/profile"
)

const PromptSkip = "Skip"

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the student profile used for matching",
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the profile (interactive unless --yes)",
	Run: func(cmd *cobra.Command, _ []string) {
		runProfileInit(cmd)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		p := s.profiles.Get(ctx)
		if p == nil {
			s.logger.Info("no profile stored", zap.String("hint", "run `studentos profile init`"))
			return
		}
		pretty, _ := json.MarshalIndent(p, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	},
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the profile and the selection history",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes && interactive() {
			confirm := promptui.Prompt{Label: "Reset the profile", IsConfirm: true}
			if _, err := confirm.Run(); err != nil {
				s.logger.Info("exiting", zap.String("reason", "reset cancelled"))
				return
			}
		}

		if err := s.profiles.Clear(ctx); err != nil {
			s.logger.Fatal("resetting profile", zap.Error(err))
		}
		s.logger.Info("profile reset")
	},
}

var profileSetSkillsCmd = &cobra.Command{
	Use:   "set-skills SKILLS",
	Short: "Replace (or with --add extend) the skills, comma separated",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		p := s.profiles.Get(ctx)
		if p == nil {
			s.logger.Fatal("no profile stored", zap.String("hint", "run `studentos profile init`"))
		}

		skills := profile.ParseSkills(args[0])
		if add, _ := cmd.Flags().GetBool("add"); add {
			skills = profile.MergeSkills(p.Skills, skills...)
		}
		p.Skills = skills

		if err := s.profiles.Set(ctx, p); err != nil {
			s.logger.Fatal("saving profile", zap.Error(err))
		}
		s.logger.Info("skills updated", zap.Strings("skills", p.Skills))
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileInitCmd, profileShowCmd, profileResetCmd, profileSetSkillsCmd)

	f := profileInitCmd.Flags()
	f.String("name", "", "student name")
	f.String("background", "", "academic background: "+joinValues(catalog.Backgrounds))
	f.String("state", "", "state")
	f.String("city", "", "city")
	f.String("district", "", "district")
	f.String("skills", "", "comma separated skills")
	f.Float64("radius", 0, fmt.Sprintf("search radius in km (%d-%d)", profile.MinRadiusKm, profile.MaxRadiusKm))
	f.Float64("salary", 0, "expected annual salary in rupees")
	f.String("role", "", "role type: "+joinValues(profile.RoleTypes))
	f.String("mode", "", "work mode: "+joinValues(profile.WorkModes))
	f.String("learning-style", "", "learning style: "+joinValues(profile.LearningStyles))
	f.BoolP("yes", "y", false, "do not prompt, take values from flags and defaults")

	profileResetCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	profileSetSkillsCmd.Flags().Bool("add", false, "add to the existing skills instead of replacing them")
}

func joinValues[T ~string](values []T) string {
	return strings.Join(stringsOf(values), ", ")
}

func runProfileInit(cmd *cobra.Command) {
	ctx := context.Background()
	s := newSession(ctx)
	defer s.Close()

	p := s.profiles.Get(ctx)
	if p == nil {
		p = profile.New()
	}

	if err := applyProfileFlags(cmd, p); err != nil {
		s.logger.Fatal("invalid profile flags", zap.Error(err))
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes && interactive() {
		if err := promptProfile(p); err != nil {
			s.logger.Fatal("onboarding aborted", zap.Error(err))
		}
	}

	p.Onboarded = true
	if err := s.profiles.Set(ctx, p); err != nil {
		s.logger.Fatal("saving profile", zap.Error(err))
	}

	if p.Coordinates == nil {
		s.logger.Warn("location is unknown, only remote jobs will score on location",
			zap.String("state", p.State), zap.String("city", p.City))
	}
	s.logger.Info("profile saved", zap.String("name", p.Name), zap.Int("skills", len(p.Skills)))
}

// applyProfileFlags copies explicitly set flags onto p.
func applyProfileFlags(cmd *cobra.Command, p *profile.Profile) error {
	f := cmd.Flags()
	str := func(name string) (string, bool) {
		if !f.Changed(name) {
			return "", false
		}
		v, _ := f.GetString(name)
		return strings.TrimSpace(v), true
	}

	if v, ok := str("name"); ok {
		p.Name = v
	}
	if v, ok := str("background"); ok {
		b, err := catalog.ParseBackground(v)
		if err != nil {
			return err
		}
		p.Background = b
	}
	if v, ok := str("skills"); ok {
		p.Skills = profile.ParseSkills(v)
	}

	state, stateSet := str("state")
	city, citySet := str("city")
	district, _ := str("district")
	if stateSet || citySet {
		if !stateSet {
			state = p.State
		}
		p.SetLocation(catalog.Locations(), state, city, district)
	}

	if f.Changed("radius") {
		r, _ := f.GetFloat64("radius")
		if err := checkRadius(r); err != nil {
			return err
		}
		p.RadiusKm = r
	}
	if f.Changed("salary") {
		v, _ := f.GetFloat64("salary")
		if err := profile.CheckExpectedSalary(v); err != nil {
			return err
		}
		p.ExpectedSalary = v
	}
	if v, ok := str("role"); ok {
		p.RoleType = profile.RoleType(v)
	}
	if v, ok := str("mode"); ok {
		p.Mode = profile.WorkMode(v)
	}
	if v, ok := str("learning-style"); ok {
		if p.Cognitive == nil {
			p.Cognitive = &profile.CognitiveProfile{}
		}
		p.Cognitive.LearningStyle = profile.LearningStyle(v)
	}
	return p.Validate()
}

func checkRadius(r float64) error {
	if r < profile.MinRadiusKm || r > profile.MaxRadiusKm {
		return fmt.Errorf("radius must be between %d and %d km", profile.MinRadiusKm, profile.MaxRadiusKm)
	}
	return nil
}

func selectValue(label string, items []string, current string) (string, error) {
	cursor := 0
	for i, item := range items {
		if strings.EqualFold(item, current) {
			cursor = i
		}
	}
	sel := promptui.Select{Label: label, Items: items, CursorPos: cursor, Size: 10}
	_, value, err := sel.Run()
	return value, err
}

func promptText(label, current string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{Label: label, Default: current, AllowEdit: true, Validate: validate}
	v, err := prompt.Run()
	return strings.TrimSpace(v), err
}

func numberIn(check func(float64) error) promptui.ValidateFunc {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New("enter a number")
		}
		return check(v)
	}
}

// promptProfile walks the onboarding questions, starting from p's values.
func promptProfile(p *profile.Profile) error {
	var err error

	if p.Name, err = promptText("Name", p.Name, nil); err != nil {
		return err
	}

	background, err := selectValue("Academic background", stringsOf(catalog.Backgrounds), string(p.Background))
	if err != nil {
		return err
	}
	p.Background = catalog.Background(background)

	states := catalog.Locations()
	state, err := selectValue("State", catalog.StateNames(states), p.State)
	if err != nil {
		return err
	}
	city, err := selectValue("City", catalog.FindState(states, state).CityNames(), p.City)
	if err != nil {
		return err
	}
	district := ""
	if c := catalog.FindCity(states, state, city); c != nil && len(c.Districts) > 0 {
		district, err = selectValue("District", append([]string{PromptSkip}, c.Districts...), p.District)
		if err != nil {
			return err
		}
		if district == PromptSkip {
			district = ""
		}
	}
	p.SetLocation(states, state, city, district)

	fmt.Printf("Suggested skills: %s\n", strings.Join(catalog.SuggestedSkills(), ", "))
	skills, err := promptText("Skills (comma separated)", strings.Join(p.Skills, ", "), func(s string) error {
		if len(profile.ParseSkills(s)) == 0 {
			return errors.New("add at least one skill")
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.Skills = profile.ParseSkills(skills)

	radius, err := promptText("Search radius, km", strconv.FormatFloat(p.RadiusKm, 'f', -1, 64), numberIn(checkRadius))
	if err != nil {
		return err
	}
	p.RadiusKm, _ = strconv.ParseFloat(radius, 64)

	salary, err := promptText("Expected annual salary, ₹", strconv.FormatFloat(p.ExpectedSalary, 'f', -1, 64), numberIn(profile.CheckExpectedSalary))
	if err != nil {
		return err
	}
	p.ExpectedSalary, _ = strconv.ParseFloat(salary, 64)

	role, err := selectValue("Role type", stringsOf(profile.RoleTypes), string(p.RoleType))
	if err != nil {
		return err
	}
	p.RoleType = profile.RoleType(role)

	mode, err := selectValue("Work mode", stringsOf(profile.WorkModes), string(p.Mode))
	if err != nil {
		return err
	}
	p.Mode = profile.WorkMode(mode)

	if p.Cognitive == nil {
		p.Cognitive = &profile.CognitiveProfile{}
	}
	style, err := selectValue("Learning style", stringsOf(profile.LearningStyles), string(p.Cognitive.LearningStyle))
	if err != nil {
		return err
	}
	p.Cognitive.LearningStyle = profile.LearningStyle(style)

	return p.Validate()
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
