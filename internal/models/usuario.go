package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Usuario represents a bank customer
type Usuario struct {
	ID       uint            `gorm:"primaryKey" json:"idUsuario"`
	Nombre   string          `gorm:"size:255;not null;index" json:"nombre"`
	Ingresos decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"ingresos"`
	Gastos   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"gastos"`
	Correo   string          `gorm:"size:255;not null" json:"correo"`
	Telefono string          `gorm:"size:64;not null" json:"telefono"`
	// Cedula is the stored path of the identity document scan, if any.
	Cedula *string `gorm:"size:512" json:"cedula"`
}

func (Usuario) TableName() string { return "usuarios" }

func (u *Usuario) GetID() uint     { return u.ID }
func (u *Usuario) Entidad() string { return EntidadUsuario }
func (u *Usuario) Label() string {
	return fmt.Sprintf("Usuario '%s' (id %d)", u.Nombre, u.ID)
}
