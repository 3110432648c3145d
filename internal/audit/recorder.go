// Package audit writes Historial rows for every accepted mutation.
package audit

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/models"
)

// Recorder appends Historial entries inside the caller's transaction, so an
// audit failure rolls back the mutation it describes.
type Recorder struct {
	now func() time.Time
}

// NewRecorder returns a Recorder stamping entries with time.Now.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// NewRecorderWithClock returns a Recorder using now for timestamps.
func NewRecorderWithClock(now func() time.Time) *Recorder {
	return &Recorder{now: now}
}

// Record appends one Historial row.
func (r *Recorder) Record(tx *gorm.DB, entidad, accion, descripcion string) (*models.Historial, error) {
	h := &models.Historial{
		Entidad:     entidad,
		Accion:      accion,
		Descripcion: descripcion,
		Fecha:       r.now(),
	}
	if err := tx.Create(h).Error; err != nil {
		return nil, fmt.Errorf("failed to record historial: %w", err)
	}
	return h, nil
}

// Created records a CREAR entry for rec.
func (r *Recorder) Created(tx *gorm.DB, rec models.Auditable) error {
	_, err := r.Record(tx, rec.Entidad(), models.AccionCrear, "Alta de "+rec.Label())
	return err
}

// Updated records an ACTUALIZAR entry for rec.
func (r *Recorder) Updated(tx *gorm.DB, rec models.Auditable) error {
	_, err := r.Record(tx, rec.Entidad(), models.AccionActualizar, "Actualización de "+rec.Label())
	return err
}

// Patched records an ACTUALIZAR_PARCIAL entry listing the changed fields.
func (r *Recorder) Patched(tx *gorm.DB, rec models.Auditable, fields []string) error {
	desc := fmt.Sprintf("Actualización parcial de %s. Campos modificados: %s", rec.Label(), strings.Join(fields, ", "))
	_, err := r.Record(tx, rec.Entidad(), models.AccionActualizarParcial, desc)
	return err
}

// Deleted records an ELIMINAR entry for rec.
func (r *Recorder) Deleted(tx *gorm.DB, rec models.Auditable) error {
	_, err := r.Record(tx, rec.Entidad(), models.AccionEliminar, "Baja de "+rec.Label())
	return err
}
