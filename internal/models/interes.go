package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Interes is the rate attached to a Credito. A Credito has at most one.
// The rate is stored as given, nothing is derived from it.
type Interes struct {
	ID        uint            `gorm:"primaryKey" json:"idInteres"`
	Tasa      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"tasa"` // percent
	Tipo      string          `gorm:"size:64;not null;index" json:"tipo"`
	CreditoID uint            `gorm:"not null;uniqueIndex" json:"credito_id"`
}

func (Interes) TableName() string { return "intereses" }

func (i *Interes) GetID() uint     { return i.ID }
func (i *Interes) Entidad() string { return EntidadInteres }
func (i *Interes) Label() string {
	return fmt.Sprintf("Interés id %d (tasa=%s, tipo='%s', credito_id=%d)",
		i.ID, i.Tasa.String(), i.Tipo, i.CreditoID)
}
