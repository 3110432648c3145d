package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

// SimulacionInput carries every field of a Simulacion. Figures are stored as
// given.
type SimulacionInput struct {
	CuotaMensual decimal.Decimal `json:"cuotaMensual" validate:"decgte=0"`
	InteresTotal decimal.Decimal `json:"interesTotal" validate:"decgte=0"`
	SaldoFinal   decimal.Decimal `json:"saldoFinal" validate:"decgte=0"`
	InteresID    uint            `json:"interes_id" validate:"required"`
}

// SimulacionPatch lists the fields a partial update may change.
type SimulacionPatch struct {
	CuotaMensual *decimal.Decimal `json:"cuotaMensual" validate:"omitempty,decgte=0"`
	InteresTotal *decimal.Decimal `json:"interesTotal" validate:"omitempty,decgte=0"`
	SaldoFinal   *decimal.Decimal `json:"saldoFinal" validate:"omitempty,decgte=0"`
	InteresID    *uint            `json:"interes_id" validate:"omitempty,gt=0"`
}

// SimulacionFilter narrows List. Zero values are ignored.
type SimulacionFilter struct {
	InteresID *uint
	CuotaMin  *decimal.Decimal
	CuotaMax  *decimal.Decimal
}

// SimulacionService manages Simulacion records.
type SimulacionService struct {
	entityService[models.Simulacion, *models.Simulacion]
}

func (s *SimulacionService) Create(ctx context.Context, in SimulacionInput) (*models.Simulacion, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	sim := &models.Simulacion{
		CuotaMensual: in.CuotaMensual,
		InteresTotal: in.InteresTotal,
		SaldoFinal:   in.SaldoFinal,
		InteresID:    in.InteresID,
	}
	err := s.create(ctx, sim, func(tx *gorm.DB) error {
		return repository.CheckReferences(tx, repository.RefTo[models.Interes](models.EntidadInteres, in.InteresID))
	})
	if err != nil {
		return nil, err
	}
	return sim, nil
}

func (s *SimulacionService) Get(ctx context.Context, id uint) (*models.Simulacion, error) {
	return s.get(ctx, id)
}

func (s *SimulacionService) List(ctx context.Context, f SimulacionFilter) ([]models.Simulacion, error) {
	q := s.repo.DB(ctx).Model(&models.Simulacion{})
	if f.InteresID != nil {
		q = q.Where("interes_id = ?", *f.InteresID)
	}
	if f.CuotaMin != nil {
		q = q.Where("cuota_mensual >= ?", *f.CuotaMin)
	}
	if f.CuotaMax != nil {
		q = q.Where("cuota_mensual <= ?", *f.CuotaMax)
	}
	var out []models.Simulacion
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SimulacionService) Update(ctx context.Context, id uint, in SimulacionInput) (*models.Simulacion, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(tx *gorm.DB, sim *models.Simulacion) error {
		if err := repository.CheckReferences(tx, repository.RefTo[models.Interes](models.EntidadInteres, in.InteresID)); err != nil {
			return err
		}
		sim.CuotaMensual = in.CuotaMensual
		sim.InteresTotal = in.InteresTotal
		sim.SaldoFinal = in.SaldoFinal
		sim.InteresID = in.InteresID
		return nil
	})
}

func (s *SimulacionService) Patch(ctx context.Context, id uint, p SimulacionPatch) (*models.Simulacion, error) {
	if err := validateInput(p); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, func(tx *gorm.DB, sim *models.Simulacion) (changes, error) {
		if p.InteresID != nil && *p.InteresID != sim.InteresID {
			if err := repository.CheckReferences(tx, repository.RefTo[models.Interes](models.EntidadInteres, *p.InteresID)); err != nil {
				return nil, err
			}
		}
		var ch changes
		setDecimal(&sim.CuotaMensual, p.CuotaMensual, "cuotaMensual", &ch)
		setDecimal(&sim.InteresTotal, p.InteresTotal, "interesTotal", &ch)
		setDecimal(&sim.SaldoFinal, p.SaldoFinal, "saldoFinal", &ch)
		setField(&sim.InteresID, p.InteresID, "interes_id", &ch)
		return ch, nil
	})
}

// Delete removes a Simulacion no Reporte points to.
func (s *SimulacionService) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id, func(tx *gorm.DB, sim *models.Simulacion) error {
		return forbidDependents(tx, sim, dependentOf[models.Reporte](models.EntidadReporte, "simulacion_id"))
	})
}
