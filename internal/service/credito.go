package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

// CreditoNotifier is told about credits after they are committed.
type CreditoNotifier interface {
	CreditoCreado(ctx context.Context, u *models.Usuario, c *models.Credito) error
}

// CreditoInput carries every field of a Credito for create and full update.
type CreditoInput struct {
	Monto       decimal.Decimal `json:"monto" validate:"decgt=0"`
	Plazo       int             `json:"plazo" validate:"gt=0"`
	Tipo        string          `json:"tipo" validate:"required,notblank"`
	Descripcion *string         `json:"descripcion"`
	UsuarioID   uint            `json:"usuario_id" validate:"required"`
}

// CreditoPatch lists the fields a partial update may change.
type CreditoPatch struct {
	Monto       *decimal.Decimal `json:"monto" validate:"omitempty,decgt=0"`
	Plazo       *int             `json:"plazo" validate:"omitempty,gt=0"`
	Tipo        *string          `json:"tipo" validate:"omitempty,notblank"`
	Descripcion *string          `json:"descripcion"`
	UsuarioID   *uint            `json:"usuario_id" validate:"omitempty,gt=0"`
}

// CreditoFilter narrows List. Zero values are ignored.
type CreditoFilter struct {
	UsuarioID *uint
	Tipo      string
	MontoMin  *decimal.Decimal
	MontoMax  *decimal.Decimal
}

// CreditoService manages Credito records.
type CreditoService struct {
	entityService[models.Credito, *models.Credito]
	notifier CreditoNotifier
}

func (s *CreditoService) Create(ctx context.Context, in CreditoInput) (*models.Credito, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c := &models.Credito{
		Monto:       in.Monto,
		Plazo:       in.Plazo,
		Tipo:        in.Tipo,
		Descripcion: in.Descripcion,
		UsuarioID:   in.UsuarioID,
	}
	err := s.create(ctx, c, func(tx *gorm.DB) error {
		return repository.CheckReferences(tx, repository.RefTo[models.Usuario](models.EntidadUsuario, in.UsuarioID))
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, c)
	return c, nil
}

// notify runs after commit; a failed notification never undoes the credit.
func (s *CreditoService) notify(ctx context.Context, c *models.Credito) {
	if s.notifier == nil {
		return
	}
	u, err := repository.Get[models.Usuario](s.repo.DB(ctx), models.EntidadUsuario, c.UsuarioID)
	if err != nil {
		s.log.Warnf("Skipping notification for credito %d: %v", c.ID, err)
		return
	}
	if err := s.notifier.CreditoCreado(ctx, u, c); err != nil {
		s.log.Errorf("Failed to notify usuario %d about credito %d: %v", u.ID, c.ID, err)
	}
}

func (s *CreditoService) Get(ctx context.Context, id uint) (*models.Credito, error) {
	return s.get(ctx, id)
}

func (s *CreditoService) List(ctx context.Context, f CreditoFilter) ([]models.Credito, error) {
	q := s.repo.DB(ctx).Model(&models.Credito{})
	if f.UsuarioID != nil {
		q = q.Where("usuario_id = ?", *f.UsuarioID)
	}
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.MontoMin != nil {
		q = q.Where("monto >= ?", *f.MontoMin)
	}
	if f.MontoMax != nil {
		q = q.Where("monto <= ?", *f.MontoMax)
	}
	var out []models.Credito
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CreditoService) Update(ctx context.Context, id uint, in CreditoInput) (*models.Credito, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(tx *gorm.DB, c *models.Credito) error {
		if err := repository.CheckReferences(tx, repository.RefTo[models.Usuario](models.EntidadUsuario, in.UsuarioID)); err != nil {
			return err
		}
		c.Monto = in.Monto
		c.Plazo = in.Plazo
		c.Tipo = in.Tipo
		c.Descripcion = in.Descripcion
		c.UsuarioID = in.UsuarioID
		return nil
	})
}

func (s *CreditoService) Patch(ctx context.Context, id uint, p CreditoPatch) (*models.Credito, error) {
	if err := validateInput(p); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, func(tx *gorm.DB, c *models.Credito) (changes, error) {
		if p.UsuarioID != nil && *p.UsuarioID != c.UsuarioID {
			if err := repository.CheckReferences(tx, repository.RefTo[models.Usuario](models.EntidadUsuario, *p.UsuarioID)); err != nil {
				return nil, err
			}
		}
		var ch changes
		setDecimal(&c.Monto, p.Monto, "monto", &ch)
		setField(&c.Plazo, p.Plazo, "plazo", &ch)
		setField(&c.Tipo, p.Tipo, "tipo", &ch)
		setOptional(&c.Descripcion, p.Descripcion, "descripcion", &ch)
		setField(&c.UsuarioID, p.UsuarioID, "usuario_id", &ch)
		return ch, nil
	})
}

// Delete removes a Credito with no Interes and no Reporte. Its category links
// go with it.
func (s *CreditoService) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id, func(tx *gorm.DB, c *models.Credito) error {
		err := forbidDependents(tx, c,
			dependentOf[models.Interes](models.EntidadInteres, "credito_id"),
			dependentOf[models.Reporte](models.EntidadReporte, "credito_id"),
		)
		if err != nil {
			return err
		}
		if err := tx.Where("credito_id = ?", c.ID).Delete(&models.CreditoCategoria{}).Error; err != nil {
			return fmt.Errorf("failed to unlink categorias of credito %d: %w", c.ID, err)
		}
		return nil
	})
}
