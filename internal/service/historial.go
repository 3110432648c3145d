package service

import (
	"context"
	"time"

	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

const (
	DefaultHistorialLimit = 100
	MaxHistorialLimit     = 1000
)

// HistorialFilter narrows List. Limit is clamped to [1, MaxHistorialLimit]
// and defaults to DefaultHistorialLimit.
type HistorialFilter struct {
	Entidad             string
	Accion              string
	DescripcionContiene string
	Desde               *time.Time
	Hasta               *time.Time
	Limit               int
	Offset              int
}

// HistorialService reads the audit log. It has no write operations.
type HistorialService struct {
	repo *repository.Repository
}

// List returns matching entries, most recent first.
func (s *HistorialService) List(ctx context.Context, f HistorialFilter) ([]models.Historial, error) {
	q := s.repo.DB(ctx).Model(&models.Historial{})
	if f.Entidad != "" {
		q = q.Where("entidad = ?", f.Entidad)
	}
	if f.Accion != "" {
		q = q.Where("accion = ?", f.Accion)
	}
	if f.DescripcionContiene != "" {
		q = repository.Contains(q, "descripcion", f.DescripcionContiene)
	}
	if f.Desde != nil {
		q = q.Where("fecha >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("fecha <= ?", *f.Hasta)
	}

	limit := f.Limit
	switch {
	case limit <= 0:
		limit = DefaultHistorialLimit
	case limit > MaxHistorialLimit:
		limit = MaxHistorialLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var out []models.Historial
	err := q.Order("fecha DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HistorialService) Get(ctx context.Context, id uint) (*models.Historial, error) {
	return repository.Get[models.Historial](s.repo.DB(ctx), "Historial", id)
}
