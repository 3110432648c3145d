package models

import "fmt"

// Categoria classifies credits. Names are unique, compared exactly.
type Categoria struct {
	ID          uint    `gorm:"primaryKey" json:"idCategoria"`
	Nombre      string  `gorm:"size:128;not null;uniqueIndex" json:"nombre"`
	Descripcion *string `gorm:"type:text" json:"descripcion"`
}

func (Categoria) TableName() string { return "categorias" }

func (c *Categoria) GetID() uint     { return c.ID }
func (c *Categoria) Entidad() string { return EntidadCategoria }
func (c *Categoria) Label() string {
	return fmt.Sprintf("Categoría '%s' (id %d)", c.Nombre, c.ID)
}

// CreditoCategoria links a Credito to a Categoria. A pair appears at most once.
type CreditoCategoria struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CreditoID   uint `gorm:"not null;uniqueIndex:idx_credito_categoria" json:"credito_id"`
	CategoriaID uint `gorm:"not null;uniqueIndex:idx_credito_categoria;index" json:"categoria_id"`
}

func (CreditoCategoria) TableName() string { return "credito_categorias" }
