package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/errs"
	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

// InteresInput carries every field of an Interes for create and full update.
type InteresInput struct {
	Tasa      decimal.Decimal `json:"tasa" validate:"decgt=0,declte=100"`
	Tipo      string          `json:"tipo" validate:"required,notblank"`
	CreditoID uint            `json:"credito_id" validate:"required"`
}

// InteresPatch lists the fields a partial update may change.
type InteresPatch struct {
	Tasa      *decimal.Decimal `json:"tasa" validate:"omitempty,decgt=0,declte=100"`
	Tipo      *string          `json:"tipo" validate:"omitempty,notblank"`
	CreditoID *uint            `json:"credito_id" validate:"omitempty,gt=0"`
}

// InteresFilter narrows List. Zero values are ignored.
type InteresFilter struct {
	CreditoID *uint
	Tipo      string
	TasaMin   *decimal.Decimal
	TasaMax   *decimal.Decimal
}

// InteresService manages Interes records.
type InteresService struct {
	entityService[models.Interes, *models.Interes]
}

// checkCreditoSinInteres fails with errs.ErrDuplicateAssociation when the
// Credito already has its Interes.
func checkCreditoSinInteres(tx *gorm.DB, creditoID uint) error {
	taken, err := repository.Referenced[models.Interes](tx, "credito_id", creditoID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: el crédito %d ya tiene un interés", errs.ErrDuplicateAssociation, creditoID)
	}
	return nil
}

func (s *InteresService) Create(ctx context.Context, in InteresInput) (*models.Interes, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	i := &models.Interes{Tasa: in.Tasa, Tipo: in.Tipo, CreditoID: in.CreditoID}
	err := s.create(ctx, i, func(tx *gorm.DB) error {
		if err := repository.CheckReferences(tx, repository.RefTo[models.Credito](models.EntidadCredito, in.CreditoID)); err != nil {
			return err
		}
		return checkCreditoSinInteres(tx, in.CreditoID)
	})
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (s *InteresService) Get(ctx context.Context, id uint) (*models.Interes, error) {
	return s.get(ctx, id)
}

func (s *InteresService) List(ctx context.Context, f InteresFilter) ([]models.Interes, error) {
	q := s.repo.DB(ctx).Model(&models.Interes{})
	if f.CreditoID != nil {
		q = q.Where("credito_id = ?", *f.CreditoID)
	}
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.TasaMin != nil {
		q = q.Where("tasa >= ?", *f.TasaMin)
	}
	if f.TasaMax != nil {
		q = q.Where("tasa <= ?", *f.TasaMax)
	}
	var out []models.Interes
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *InteresService) Update(ctx context.Context, id uint, in InteresInput) (*models.Interes, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(tx *gorm.DB, i *models.Interes) error {
		if err := repository.CheckReferences(tx, repository.RefTo[models.Credito](models.EntidadCredito, in.CreditoID)); err != nil {
			return err
		}
		if in.CreditoID != i.CreditoID {
			if err := checkCreditoSinInteres(tx, in.CreditoID); err != nil {
				return err
			}
		}
		i.Tasa = in.Tasa
		i.Tipo = in.Tipo
		i.CreditoID = in.CreditoID
		return nil
	})
}

func (s *InteresService) Patch(ctx context.Context, id uint, p InteresPatch) (*models.Interes, error) {
	if err := validateInput(p); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, func(tx *gorm.DB, i *models.Interes) (changes, error) {
		if p.CreditoID != nil && *p.CreditoID != i.CreditoID {
			if err := repository.CheckReferences(tx, repository.RefTo[models.Credito](models.EntidadCredito, *p.CreditoID)); err != nil {
				return nil, err
			}
			if err := checkCreditoSinInteres(tx, *p.CreditoID); err != nil {
				return nil, err
			}
		}
		var ch changes
		setDecimal(&i.Tasa, p.Tasa, "tasa", &ch)
		setField(&i.Tipo, p.Tipo, "tipo", &ch)
		setField(&i.CreditoID, p.CreditoID, "credito_id", &ch)
		return ch, nil
	})
}

// Delete removes an Interes that no Simulacion uses.
func (s *InteresService) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id, func(tx *gorm.DB, i *models.Interes) error {
		return forbidDependents(tx, i, dependentOf[models.Simulacion](models.EntidadSimulacion, "interes_id"))
	})
}
