// Package record holds the create/read/update/delete contract shared by every entity manager.
package record

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/sims/core"
)

type (
	// Entity is a record identified by a key of type K.
	// Clean returns a copy of the record with its text fields trimmed.
	Entity[T any, K comparable] interface {
		Key() K
		Clean() T
	}

	// Repository is implemented by every storage backend, once per entity.
	// Get, Update and Delete return core.ErrNotFound when no record matches the key.
	// Insert may return core.ErrDuplicateKey or core.ErrMissingReference when the backend enforces them.
	Repository[T Entity[T, K], K comparable] interface {
		Insert(ctx context.Context, item T) error
		Update(ctx context.Context, item T) error
		Delete(ctx context.Context, key K) error
		Get(ctx context.Context, key K) (T, error)
		List(ctx context.Context) ([]T, error)
	}

	// Manager enforces the application level rules (validation, key uniqueness) on top of a Repository
	// and reports every outcome to its logger.
	Manager[T Entity[T, K], K comparable] struct {
		name     string
		repo     Repository[T, K]
		validate *validator.Validate
		logger   core.Logger
	}
)

func NewManager[T Entity[T, K], K comparable](
	name string,
	repo Repository[T, K],
	validate *validator.Validate,
	logger core.Logger,
) *Manager[T, K] {
	return &Manager[T, K]{
		name:     name,
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

// Add persists item unless a record with the same key exists already.
func (m *Manager[T, K]) Add(ctx context.Context, item T) (T, error) {
	item = item.Clean()
	if err := m.validate.Struct(item); err != nil {
		return item, m.report("add", item.Key(), err)
	}

	key := item.Key()
	if _, err := m.repo.Get(ctx, key); err == nil {
		return item, m.report("add", key, errors.Wrapf(core.ErrDuplicateKey, "%s %v", m.name, key))
	} else if errors.Cause(err) != core.ErrNotFound {
		return item, m.report("add", key, errors.Wrapf(err, "searching %s", m.name))
	}

	if err := m.repo.Insert(ctx, item); err != nil {
		return item, m.report("add", key, errors.Wrapf(err, "inserting %s", m.name))
	}
	m.logger.Info(fmt.Sprintf("%s added successfully: %v", m.name, item))
	return item, nil
}

// Update fully replaces the record matching item's key.
func (m *Manager[T, K]) Update(ctx context.Context, item T) (T, error) {
	item = item.Clean()
	if err := m.validate.Struct(item); err != nil {
		return item, m.report("update", item.Key(), err)
	}
	if err := m.repo.Update(ctx, item); err != nil {
		return item, m.report("update", item.Key(), errors.Wrapf(err, "updating %s %v", m.name, item.Key()))
	}
	m.logger.Info(fmt.Sprintf("%s updated successfully: %v", m.name, item))
	return item, nil
}

// Delete removes the record matching key.
func (m *Manager[T, K]) Delete(ctx context.Context, key K) error {
	if err := m.repo.Delete(ctx, key); err != nil {
		return m.report("delete", key, errors.Wrapf(err, "deleting %s %v", m.name, key))
	}
	m.logger.Info(fmt.Sprintf("%s deleted successfully: %v", m.name, key))
	return nil
}

// Search looks a record up by exact key.
func (m *Manager[T, K]) Search(ctx context.Context, key K) (T, error) {
	item, err := m.repo.Get(ctx, key)
	if err != nil {
		if errors.Cause(err) == core.ErrNotFound {
			err = errors.Wrapf(err, "%s %v", m.name, key)
		} else {
			err = errors.Wrapf(err, "searching %s %v", m.name, key)
		}
		return item, m.report("search", key, err)
	}
	return item, nil
}

// List returns every record, in the order defined by the backend.
func (m *Manager[T, K]) List(ctx context.Context) ([]T, error) {
	items, err := m.repo.List(ctx)
	if err != nil {
		m.logger.Error(fmt.Sprintf("listing %s records failed", m.name), err)
		return nil, errors.Wrapf(err, "listing %s records", m.name)
	}
	return items, nil
}

func (m *Manager[T, K]) report(action string, key K, err error) error {
	msg := fmt.Sprintf("%s %s failed! key: %v", action, m.name, key)
	if core.KindOf(err) == core.KindStorage {
		m.logger.Error(msg, err)
	} else {
		m.logger.Warn(msg, err.Error())
	}
	return err
}
