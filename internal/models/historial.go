package models

import "time"

// Entity names recorded in Historial.Entidad.
const (
	EntidadUsuario          = "Usuario"
	EntidadCredito          = "Crédito"
	EntidadInteres          = "Interés"
	EntidadSimulacion       = "Simulación"
	EntidadReporte          = "Reporte"
	EntidadCategoria        = "Categoría"
	EntidadCreditoCategoria = "Categoría-Crédito"
	EntidadSistema          = "Sistema"
)

// Action codes recorded in Historial.Accion.
const (
	AccionCrear             = "CREAR"
	AccionActualizar        = "ACTUALIZAR"
	AccionActualizarParcial = "ACTUALIZAR_PARCIAL"
	AccionEliminar          = "ELIMINAR"
	AccionAsignar           = "ASIGNAR"
	AccionDesasignar        = "DESASIGNAR"
	AccionInicializacion    = "INICIALIZACION"
)

// Historial is an append-only audit record. Rows are never updated or deleted.
type Historial struct {
	ID          uint      `gorm:"primaryKey" json:"idHistorial"`
	Entidad     string    `gorm:"size:64;not null;index" json:"entidad"`
	Accion      string    `gorm:"size:32;not null;index" json:"accion"`
	Descripcion string    `gorm:"type:text;not null" json:"descripcion"`
	Fecha       time.Time `gorm:"not null;index" json:"fecha"`
}

func (Historial) TableName() string { return "historial" }
