package models

import (
	"fmt"
	"time"
)

// Reporte is a report optionally tied to a Usuario, a Credito and a Simulacion.
type Reporte struct {
	ID           uint      `gorm:"primaryKey" json:"idReporte"`
	Titulo       string    `gorm:"size:255;not null" json:"titulo"`
	Descripcion  *string   `gorm:"type:text" json:"descripcion"`
	Fecha        time.Time `gorm:"not null;index" json:"fecha"`
	UsuarioID    *uint     `gorm:"index" json:"usuario_id"`
	CreditoID    *uint     `gorm:"index" json:"credito_id"`
	SimulacionID *uint     `gorm:"index" json:"simulacion_id"`
}

func (Reporte) TableName() string { return "reportes" }

func (r *Reporte) GetID() uint     { return r.ID }
func (r *Reporte) Entidad() string { return EntidadReporte }
func (r *Reporte) Label() string {
	return fmt.Sprintf("Reporte '%s' (id %d, usuario_id=%s, credito_id=%s, simulacion_id=%s)",
		r.Titulo, r.ID, optionalID(r.UsuarioID), optionalID(r.CreditoID), optionalID(r.SimulacionID))
}

func optionalID(id *uint) string {
	if id == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *id)
}
