package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Simulacion stores the figures of one amortization simulation for an Interes.
type Simulacion struct {
	ID           uint            `gorm:"primaryKey" json:"idSimulacion"`
	CuotaMensual decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"cuotaMensual"`
	InteresTotal decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"interesTotal"`
	SaldoFinal   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"saldoFinal"`
	InteresID    uint            `gorm:"not null;index" json:"interes_id"`
}

func (Simulacion) TableName() string { return "simulaciones" }

func (s *Simulacion) GetID() uint     { return s.ID }
func (s *Simulacion) Entidad() string { return EntidadSimulacion }
func (s *Simulacion) Label() string {
	return fmt.Sprintf("Simulación id %d (cuotaMensual=%s, interesTotal=%s, saldoFinal=%s, interes_id=%d)",
		s.ID, s.CuotaMensual.String(), s.InteresTotal.String(), s.SaldoFinal.String(), s.InteresID)
}
