package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

// ReporteInput carries every field of a Reporte. A nil Fecha means now.
type ReporteInput struct {
	Titulo       string     `json:"titulo" validate:"required,notblank"`
	Descripcion  *string    `json:"descripcion"`
	Fecha        *time.Time `json:"fecha"`
	UsuarioID    *uint      `json:"usuario_id" validate:"omitempty,gt=0"`
	CreditoID    *uint      `json:"credito_id" validate:"omitempty,gt=0"`
	SimulacionID *uint      `json:"simulacion_id" validate:"omitempty,gt=0"`
}

// ReportePatch lists the fields a partial update may change.
type ReportePatch struct {
	Titulo       *string    `json:"titulo" validate:"omitempty,notblank"`
	Descripcion  *string    `json:"descripcion"`
	Fecha        *time.Time `json:"fecha"`
	UsuarioID    *uint      `json:"usuario_id" validate:"omitempty,gt=0"`
	CreditoID    *uint      `json:"credito_id" validate:"omitempty,gt=0"`
	SimulacionID *uint      `json:"simulacion_id" validate:"omitempty,gt=0"`
}

// ReporteFilter narrows List. Zero values are ignored.
type ReporteFilter struct {
	UsuarioID      *uint
	CreditoID      *uint
	SimulacionID   *uint
	Desde          *time.Time
	Hasta          *time.Time
	TituloContiene string
}

// ReporteService manages Reporte records.
type ReporteService struct {
	entityService[models.Reporte, *models.Reporte]
	now func() time.Time
}

func reporteRefs(usuarioID, creditoID, simulacionID *uint) []repository.Ref {
	return []repository.Ref{
		repository.OptionalRefTo[models.Usuario](models.EntidadUsuario, usuarioID),
		repository.OptionalRefTo[models.Credito](models.EntidadCredito, creditoID),
		repository.OptionalRefTo[models.Simulacion](models.EntidadSimulacion, simulacionID),
	}
}

func (s *ReporteService) Create(ctx context.Context, in ReporteInput) (*models.Reporte, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	r := &models.Reporte{
		Titulo:       in.Titulo,
		Descripcion:  in.Descripcion,
		UsuarioID:    in.UsuarioID,
		CreditoID:    in.CreditoID,
		SimulacionID: in.SimulacionID,
	}
	if in.Fecha != nil {
		r.Fecha = *in.Fecha
	} else {
		r.Fecha = s.now()
	}
	err := s.create(ctx, r, func(tx *gorm.DB) error {
		return repository.CheckReferences(tx, reporteRefs(in.UsuarioID, in.CreditoID, in.SimulacionID)...)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReporteService) Get(ctx context.Context, id uint) (*models.Reporte, error) {
	return s.get(ctx, id)
}

func (s *ReporteService) List(ctx context.Context, f ReporteFilter) ([]models.Reporte, error) {
	q := s.repo.DB(ctx).Model(&models.Reporte{})
	if f.UsuarioID != nil {
		q = q.Where("usuario_id = ?", *f.UsuarioID)
	}
	if f.CreditoID != nil {
		q = q.Where("credito_id = ?", *f.CreditoID)
	}
	if f.SimulacionID != nil {
		q = q.Where("simulacion_id = ?", *f.SimulacionID)
	}
	if f.Desde != nil {
		q = q.Where("fecha >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("fecha <= ?", *f.Hasta)
	}
	if f.TituloContiene != "" {
		q = repository.Contains(q, "titulo", f.TituloContiene)
	}
	var out []models.Reporte
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces every field. A nil Fecha keeps the stored date.
func (s *ReporteService) Update(ctx context.Context, id uint, in ReporteInput) (*models.Reporte, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(tx *gorm.DB, r *models.Reporte) error {
		if err := repository.CheckReferences(tx, reporteRefs(in.UsuarioID, in.CreditoID, in.SimulacionID)...); err != nil {
			return err
		}
		r.Titulo = in.Titulo
		r.Descripcion = in.Descripcion
		if in.Fecha != nil {
			r.Fecha = *in.Fecha
		}
		r.UsuarioID = in.UsuarioID
		r.CreditoID = in.CreditoID
		r.SimulacionID = in.SimulacionID
		return nil
	})
}

func (s *ReporteService) Patch(ctx context.Context, id uint, p ReportePatch) (*models.Reporte, error) {
	if err := validateInput(p); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, func(tx *gorm.DB, r *models.Reporte) (changes, error) {
		err := repository.CheckReferences(tx, reporteRefs(
			changedRef(r.UsuarioID, p.UsuarioID),
			changedRef(r.CreditoID, p.CreditoID),
			changedRef(r.SimulacionID, p.SimulacionID),
		)...)
		if err != nil {
			return nil, err
		}
		var ch changes
		setField(&r.Titulo, p.Titulo, "titulo", &ch)
		setOptional(&r.Descripcion, p.Descripcion, "descripcion", &ch)
		if p.Fecha != nil && !p.Fecha.Equal(r.Fecha) {
			r.Fecha = *p.Fecha
			ch = append(ch, "fecha")
		}
		setOptional(&r.UsuarioID, p.UsuarioID, "usuario_id", &ch)
		setOptional(&r.CreditoID, p.CreditoID, "credito_id", &ch)
		setOptional(&r.SimulacionID, p.SimulacionID, "simulacion_id", &ch)
		return ch, nil
	})
}

// changedRef returns next only when it differs from cur, so unchanged
// foreign keys are not re-validated.
func changedRef(cur, next *uint) *uint {
	if next == nil || (cur != nil && *cur == *next) {
		return nil
	}
	return next
}

func (s *ReporteService) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id, nil)
}
