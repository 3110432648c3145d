package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Credito represents a credit requested by a Usuario
type Credito struct {
	ID          uint            `gorm:"primaryKey" json:"idCredito"`
	Monto       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"monto"`
	Plazo       int             `gorm:"not null" json:"plazo"` // months
	Tipo        string          `gorm:"size:64;not null;index" json:"tipo"`
	Descripcion *string         `gorm:"type:text" json:"descripcion"`
	UsuarioID   uint            `gorm:"not null;index" json:"usuario_id"`
}

func (Credito) TableName() string { return "creditos" }

func (c *Credito) GetID() uint     { return c.ID }
func (c *Credito) Entidad() string { return EntidadCredito }
func (c *Credito) Label() string {
	return fmt.Sprintf("Crédito id %d (monto=%s, plazo=%d, tipo='%s', usuario_id=%d)",
		c.ID, c.Monto.String(), c.Plazo, c.Tipo, c.UsuarioID)
}
