package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/studentos/internal/logger"
	"github.com/spigell/studentos/internal/profile"
	"github.com/spigell/studentos/internal/tasks"
)

// read fetches key and reports whether a value exists. Backend failures are
// logged and treated as absence so the caller falls back to defaults.
func read(ctx context.Context, kv KV, log *zap.Logger, key string) ([]byte, bool) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		log.Warn("failed to read persisted state", append(logger.StoreFields(kv.Backend(), key), zap.Error(err))...)
		return nil, false
	}
	return data, true
}

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// ProfileStore persists the student profile.
type ProfileStore struct {
	kv     KV
	logger *zap.Logger
}

func NewProfileStore(kv KV, log *zap.Logger) *ProfileStore {
	return &ProfileStore{kv: kv, logger: nopIfNil(log)}
}

// Get returns the stored profile, or nil when none is stored or the stored
// value is malformed.
func (s *ProfileStore) Get(ctx context.Context) *profile.Profile {
	data, ok := read(ctx, s.kv, s.logger, KeyProfile)
	if !ok {
		return nil
	}

	var p profile.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("ignoring malformed profile", append(logger.StoreFields(s.kv.Backend(), KeyProfile), zap.Error(err))...)
		return nil
	}
	if err := p.Validate(); err != nil {
		s.logger.Warn("ignoring invalid profile", append(logger.StoreFields(s.kv.Backend(), KeyProfile), zap.Error(err))...)
		return nil
	}
	return &p
}

func (s *ProfileStore) Set(ctx context.Context, p *profile.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.kv.Set(ctx, KeyProfile, data)
}

// Clear removes the profile together with the selection state.
func (s *ProfileStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyProfile); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.kv.Delete(ctx, KeyLastJobID); err != nil {
		return fmt.Errorf("delete last shown job: %w", err)
	}
	return nil
}

// TaskStore persists the study plan.
type TaskStore struct {
	kv     KV
	logger *zap.Logger
}

func NewTaskStore(kv KV, log *zap.Logger) *TaskStore {
	return &TaskStore{kv: kv, logger: nopIfNil(log)}
}

// Get returns the stored plan, or the seed plan when none is stored or the
// stored value is malformed.
func (s *TaskStore) Get(ctx context.Context) tasks.List {
	data, ok := read(ctx, s.kv, s.logger, KeyTasks)
	if !ok {
		return tasks.Seed()
	}

	var list tasks.List
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Warn("ignoring malformed tasks", append(logger.StoreFields(s.kv.Backend(), KeyTasks), zap.Error(err))...)
		return tasks.Seed()
	}
	if err := list.Valid(); err != nil {
		s.logger.Warn("ignoring invalid tasks", append(logger.StoreFields(s.kv.Backend(), KeyTasks), zap.Error(err))...)
		return tasks.Seed()
	}
	if list == nil {
		list = tasks.List{}
	}
	return list
}

func (s *TaskStore) Set(ctx context.Context, list tasks.List) error {
	if list == nil {
		list = tasks.List{}
	}
	if err := list.Valid(); err != nil {
		return err
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	return s.kv.Set(ctx, KeyTasks, data)
}

// LastShownStore persists the id of the most recently surfaced job.
type LastShownStore struct {
	kv     KV
	logger *zap.Logger
}

func NewLastShownStore(kv KV, log *zap.Logger) *LastShownStore {
	return &LastShownStore{kv: kv, logger: nopIfNil(log)}
}

// Get returns the stored id or "" when there is none.
func (s *LastShownStore) Get(ctx context.Context) string {
	data, ok := read(ctx, s.kv, s.logger, KeyLastJobID)
	if !ok {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *LastShownStore) Set(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return s.kv.Delete(ctx, KeyLastJobID)
	}
	return s.kv.Set(ctx, KeyLastJobID, []byte(id))
}
