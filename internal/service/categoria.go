package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/errs"
	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

// CategoriaInput carries every field of a Categoria.
type CategoriaInput struct {
	Nombre      string  `json:"nombre" validate:"required,notblank"`
	Descripcion *string `json:"descripcion"`
}

// CategoriaPatch lists the fields a partial update may change.
type CategoriaPatch struct {
	Nombre      *string `json:"nombre" validate:"omitempty,notblank"`
	Descripcion *string `json:"descripcion"`
}

// CategoriaFilter narrows List. Zero values are ignored.
type CategoriaFilter struct {
	NombreContiene string
}

// CategoriaService manages categories and their links to credits.
type CategoriaService struct {
	entityService[models.Categoria, *models.Categoria]
}

// checkNombreLibre fails with errs.ErrDuplicateName when another Categoria
// already uses nombre. The comparison is exact and case-sensitive.
func checkNombreLibre(tx *gorm.DB, nombre string, exceptID uint) error {
	var n int64
	q := tx.Model(&models.Categoria{}).Where("nombre = ?", nombre)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check categoria name: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: ya existe una categoría con el nombre '%s'", errs.ErrDuplicateName, nombre)
	}
	return nil
}

func (s *CategoriaService) Create(ctx context.Context, in CategoriaInput) (*models.Categoria, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c := &models.Categoria{Nombre: in.Nombre, Descripcion: in.Descripcion}
	err := s.create(ctx, c, func(tx *gorm.DB) error {
		return checkNombreLibre(tx, in.Nombre, 0)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoriaService) Get(ctx context.Context, id uint) (*models.Categoria, error) {
	return s.get(ctx, id)
}

func (s *CategoriaService) List(ctx context.Context, f CategoriaFilter) ([]models.Categoria, error) {
	q := s.repo.DB(ctx).Model(&models.Categoria{})
	if f.NombreContiene != "" {
		q = repository.Contains(q, "nombre", f.NombreContiene)
	}
	var out []models.Categoria
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces nombre and descripcion. Links to credits are left as they are.
func (s *CategoriaService) Update(ctx context.Context, id uint, in CategoriaInput) (*models.Categoria, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(tx *gorm.DB, c *models.Categoria) error {
		if in.Nombre != c.Nombre {
			if err := checkNombreLibre(tx, in.Nombre, c.ID); err != nil {
				return err
			}
		}
		c.Nombre = in.Nombre
		c.Descripcion = in.Descripcion
		return nil
	})
}

func (s *CategoriaService) Patch(ctx context.Context, id uint, p CategoriaPatch) (*models.Categoria, error) {
	if err := validateInput(p); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, func(tx *gorm.DB, c *models.Categoria) (changes, error) {
		if p.Nombre != nil && *p.Nombre != c.Nombre {
			if err := checkNombreLibre(tx, *p.Nombre, c.ID); err != nil {
				return nil, err
			}
		}
		var ch changes
		setField(&c.Nombre, p.Nombre, "nombre", &ch)
		setOptional(&c.Descripcion, p.Descripcion, "descripcion", &ch)
		return ch, nil
	})
}

// Delete removes the Categoria together with all its credit links.
func (s *CategoriaService) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id, func(tx *gorm.DB, c *models.Categoria) error {
		if err := tx.Where("categoria_id = ?", c.ID).Delete(&models.CreditoCategoria{}).Error; err != nil {
			return fmt.Errorf("failed to unlink creditos of categoria %d: %w", c.ID, err)
		}
		return nil
	})
}

// Assign links a Categoria to a Credito. Linking the same pair twice fails
// with errs.ErrDuplicateAssociation.
func (s *CategoriaService) Assign(ctx context.Context, categoriaID, creditoID uint) (*models.CreditoCategoria, error) {
	link := &models.CreditoCategoria{CategoriaID: categoriaID, CreditoID: creditoID}
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		cat, err := repository.Get[models.Categoria](tx, models.EntidadCategoria, categoriaID)
		if err != nil {
			return err
		}
		if err := repository.CheckReferences(tx, repository.RefTo[models.Credito](models.EntidadCredito, creditoID)); err != nil {
			return err
		}
		linked, err := findLink(tx, categoriaID, creditoID)
		if err != nil {
			return err
		}
		if linked != nil {
			return fmt.Errorf("%w: la categoría %d ya está asociada al crédito %d", errs.ErrDuplicateAssociation, categoriaID, creditoID)
		}
		if err := tx.Create(link).Error; err != nil {
			return fmt.Errorf("failed to link categoria %d to credito %d: %w", categoriaID, creditoID, err)
		}
		desc := fmt.Sprintf("%s asignada al crédito id %d", cat.Label(), creditoID)
		_, err = s.audit.Record(tx, models.EntidadCreditoCategoria, models.AccionAsignar, desc)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof("Linked categoria %d to credito %d", categoriaID, creditoID)
	return link, nil
}

// Unassign removes the link between a Categoria and a Credito.
func (s *CategoriaService) Unassign(ctx context.Context, categoriaID, creditoID uint) error {
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		link, err := findLink(tx, categoriaID, creditoID)
		if err != nil {
			return err
		}
		if link == nil {
			return fmt.Errorf("%w: la categoría %d no está asociada al crédito %d", errs.ErrNotFound, categoriaID, creditoID)
		}
		cat, err := repository.Get[models.Categoria](tx, models.EntidadCategoria, categoriaID)
		if err != nil {
			return err
		}
		if err := tx.Delete(link).Error; err != nil {
			return fmt.Errorf("failed to unlink categoria %d from credito %d: %w", categoriaID, creditoID, err)
		}
		desc := fmt.Sprintf("%s desasignada del crédito id %d", cat.Label(), creditoID)
		_, err = s.audit.Record(tx, models.EntidadCreditoCategoria, models.AccionDesasignar, desc)
		return err
	})
	if err != nil {
		return err
	}
	s.log.Infof("Unlinked categoria %d from credito %d", categoriaID, creditoID)
	return nil
}

// CategoriasDeCredito lists the categories linked to a Credito.
func (s *CategoriaService) CategoriasDeCredito(ctx context.Context, creditoID uint) ([]models.Categoria, error) {
	db := s.repo.DB(ctx)
	if _, err := repository.Get[models.Credito](db, models.EntidadCredito, creditoID); err != nil {
		return nil, err
	}
	var out []models.Categoria
	err := db.Model(&models.Categoria{}).
		Joins("JOIN credito_categorias cc ON cc.categoria_id = categorias.id").
		Where("cc.credito_id = ?", creditoID).
		Order("categorias.id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreditosDeCategoria lists the credits linked to a Categoria.
func (s *CategoriaService) CreditosDeCategoria(ctx context.Context, categoriaID uint) ([]models.Credito, error) {
	db := s.repo.DB(ctx)
	if _, err := repository.Get[models.Categoria](db, models.EntidadCategoria, categoriaID); err != nil {
		return nil, err
	}
	var out []models.Credito
	err := db.Model(&models.Credito{}).
		Joins("JOIN credito_categorias cc ON cc.credito_id = creditos.id").
		Where("cc.categoria_id = ?", categoriaID).
		Order("creditos.id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func findLink(tx *gorm.DB, categoriaID, creditoID uint) (*models.CreditoCategoria, error) {
	var link models.CreditoCategoria
	err := tx.Where("categoria_id = ? AND credito_id = ?", categoriaID, creditoID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find categoria link: %w", err)
	}
	return &link, nil
}
