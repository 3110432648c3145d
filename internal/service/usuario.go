package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

// UsuarioInput carries every field of a Usuario for create and full update.
type UsuarioInput struct {
	Nombre   string          `json:"nombre" validate:"required,notblank"`
	Ingresos decimal.Decimal `json:"ingresos" validate:"decgte=0"`
	Gastos   decimal.Decimal `json:"gastos" validate:"decgte=0"`
	Correo   string          `json:"correo" validate:"required,email"`
	Telefono string          `json:"telefono" validate:"required,notblank"`
}

// UsuarioPatch lists the fields a partial update may change.
type UsuarioPatch struct {
	Nombre   *string          `json:"nombre" validate:"omitempty,notblank"`
	Ingresos *decimal.Decimal `json:"ingresos" validate:"omitempty,decgte=0"`
	Gastos   *decimal.Decimal `json:"gastos" validate:"omitempty,decgte=0"`
	Correo   *string          `json:"correo" validate:"omitempty,email"`
	Telefono *string          `json:"telefono" validate:"omitempty,notblank"`
}

// UsuarioFilter narrows List. Zero values are ignored.
type UsuarioFilter struct {
	NombreContiene string
	IngresosMin    *decimal.Decimal
	IngresosMax    *decimal.Decimal
}

// UsuarioService manages Usuario records.
type UsuarioService struct {
	entityService[models.Usuario, *models.Usuario]
}

func (s *UsuarioService) Create(ctx context.Context, in UsuarioInput) (*models.Usuario, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	u := &models.Usuario{
		Nombre:   in.Nombre,
		Ingresos: in.Ingresos,
		Gastos:   in.Gastos,
		Correo:   in.Correo,
		Telefono: in.Telefono,
	}
	if err := s.create(ctx, u, nil); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UsuarioService) Get(ctx context.Context, id uint) (*models.Usuario, error) {
	return s.get(ctx, id)
}

func (s *UsuarioService) List(ctx context.Context, f UsuarioFilter) ([]models.Usuario, error) {
	q := s.repo.DB(ctx).Model(&models.Usuario{})
	if f.NombreContiene != "" {
		q = repository.Contains(q, "nombre", f.NombreContiene)
	}
	if f.IngresosMin != nil {
		q = q.Where("ingresos >= ?", *f.IngresosMin)
	}
	if f.IngresosMax != nil {
		q = q.Where("ingresos <= ?", *f.IngresosMax)
	}
	var out []models.Usuario
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UsuarioService) Update(ctx context.Context, id uint, in UsuarioInput) (*models.Usuario, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(_ *gorm.DB, u *models.Usuario) error {
		u.Nombre = in.Nombre
		u.Ingresos = in.Ingresos
		u.Gastos = in.Gastos
		u.Correo = in.Correo
		u.Telefono = in.Telefono
		return nil
	})
}

func (s *UsuarioService) Patch(ctx context.Context, id uint, p UsuarioPatch) (*models.Usuario, error) {
	if err := validateInput(p); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, func(_ *gorm.DB, u *models.Usuario) (changes, error) {
		var ch changes
		setField(&u.Nombre, p.Nombre, "nombre", &ch)
		setDecimal(&u.Ingresos, p.Ingresos, "ingresos", &ch)
		setDecimal(&u.Gastos, p.Gastos, "gastos", &ch)
		setField(&u.Correo, p.Correo, "correo", &ch)
		setField(&u.Telefono, p.Telefono, "telefono", &ch)
		return ch, nil
	})
}

// AttachCedula stores the path of an uploaded identity document.
func (s *UsuarioService) AttachCedula(ctx context.Context, id uint, path string) (*models.Usuario, error) {
	return s.patch(ctx, id, func(_ *gorm.DB, u *models.Usuario) (changes, error) {
		var ch changes
		setOptional(&u.Cedula, &path, "cedula", &ch)
		return ch, nil
	})
}

// Delete removes a Usuario that owns no Credito and no Reporte.
func (s *UsuarioService) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id, func(tx *gorm.DB, u *models.Usuario) error {
		return forbidDependents(tx, u,
			dependentOf[models.Credito](models.EntidadCredito, "usuario_id"),
			dependentOf[models.Reporte](models.EntidadReporte, "usuario_id"),
		)
	})
}
