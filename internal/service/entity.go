package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/audit"
	"github.com/Dan9191/credit-simulator/internal/errs"
	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

type entityPtr[T any] interface {
	*T
	models.Auditable
}

// entityService runs the validate, persist, audit sequence shared by every
// entity. Each step happens in one transaction.
type entityService[T any, P entityPtr[T]] struct {
	entidad string
	repo    *repository.Repository
	audit   *audit.Recorder
	log     *logrus.Logger
}

func newEntityService[T any, P entityPtr[T]](entidad string, repo *repository.Repository, rec *audit.Recorder, log *logrus.Logger) entityService[T, P] {
	return entityService[T, P]{entidad: entidad, repo: repo, audit: rec, log: log}
}

func (s *entityService[T, P]) get(ctx context.Context, id uint) (P, error) {
	rec, err := repository.Get[T](s.repo.DB(ctx), s.entidad, id)
	if err != nil {
		return nil, err
	}
	return P(rec), nil
}

func (s *entityService[T, P]) create(ctx context.Context, rec P, check func(tx *gorm.DB) error) error {
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if check != nil {
			if err := check(tx); err != nil {
				return err
			}
		}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to create %s: %w", s.entidad, err)
		}
		return s.audit.Created(tx, rec)
	})
	if err != nil {
		return err
	}
	s.log.Infof("Created %s", rec.Label())
	return nil
}

// update replaces the record through apply and records ACTUALIZAR.
func (s *entityService[T, P]) update(ctx context.Context, id uint, apply func(tx *gorm.DB, cur P) error) (P, error) {
	var out P
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		rec, err := repository.Get[T](tx, s.entidad, id)
		if err != nil {
			return err
		}
		cur := P(rec)
		if err := apply(tx, cur); err != nil {
			return err
		}
		if err := tx.Save(cur).Error; err != nil {
			return fmt.Errorf("failed to update %s %d: %w", s.entidad, id, err)
		}
		out = cur
		return s.audit.Updated(tx, cur)
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof("Updated %s", out.Label())
	return out, nil
}

// patch applies a partial update. apply returns the changed field names;
// when none changed nothing is written and no audit row is recorded.
func (s *entityService[T, P]) patch(ctx context.Context, id uint, apply func(tx *gorm.DB, cur P) (changes, error)) (P, error) {
	var (
		out     P
		changed changes
	)
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		rec, err := repository.Get[T](tx, s.entidad, id)
		if err != nil {
			return err
		}
		cur := P(rec)
		out = cur
		changed, err = apply(tx, cur)
		if err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}
		if err := tx.Save(cur).Error; err != nil {
			return fmt.Errorf("failed to patch %s %d: %w", s.entidad, id, err)
		}
		return s.audit.Patched(tx, cur, changed)
	})
	if err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		s.log.Infof("Patched %s: %v", out.Label(), changed)
	}
	return out, nil
}

// delete removes the record once before (dependency checks, cascades) passes
// and records ELIMINAR.
func (s *entityService[T, P]) delete(ctx context.Context, id uint, before func(tx *gorm.DB, cur P) error) error {
	var label string
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		rec, err := repository.Get[T](tx, s.entidad, id)
		if err != nil {
			return err
		}
		cur := P(rec)
		if before != nil {
			if err := before(tx, cur); err != nil {
				return err
			}
		}
		if err := s.audit.Deleted(tx, cur); err != nil {
			return err
		}
		if err := tx.Delete(cur).Error; err != nil {
			return fmt.Errorf("failed to delete %s %d: %w", s.entidad, id, err)
		}
		label = cur.Label()
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Infof("Deleted %s", label)
	return nil
}

// dependent names a child table whose rows block deleting a parent.
type dependent struct {
	entidad string
	column  string
	check   func(tx *gorm.DB, column string, id uint) (bool, error)
}

func dependentOf[D any](entidad, column string) dependent {
	return dependent{entidad: entidad, column: column, check: repository.Referenced[D]}
}

// forbidDependents fails with errs.ErrHasDependents when any dependent table
// still references rec.
func forbidDependents(tx *gorm.DB, rec models.Auditable, deps ...dependent) error {
	for _, d := range deps {
		found, err := d.check(tx, d.column, rec.GetID())
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("%w: %s tiene registros de %s asociados", errs.ErrHasDependents, rec.Label(), d.entidad)
		}
	}
	return nil
}
