package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/models"
)

// Seed loads sample rows when no Usuario exists yet. It reports whether
// anything was inserted.
func (r *Repository) Seed(ctx context.Context, now time.Time) (bool, error) {
	seeded := false
	err := r.Transaction(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Usuario{}).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to count usuarios: %w", err)
		}
		if n > 0 {
			return nil
		}

		juan := models.Usuario{
			Nombre:   "Juan Pérez",
			Ingresos: decimal.NewFromInt(3_000_000),
			Gastos:   decimal.NewFromInt(1_200_000),
			Correo:   "juan.perez@example.com",
			Telefono: "3001234567",
		}
		maria := models.Usuario{
			Nombre:   "María López",
			Ingresos: decimal.NewFromInt(4_500_000),
			Gastos:   decimal.NewFromInt(1_800_000),
			Correo:   "maria.lopez@example.com",
			Telefono: "3109876543",
		}
		if err := tx.Create(&juan).Error; err != nil {
			return fmt.Errorf("failed to seed usuario: %w", err)
		}
		if err := tx.Create(&maria).Error; err != nil {
			return fmt.Errorf("failed to seed usuario: %w", err)
		}

		personal := models.Credito{Monto: decimal.NewFromInt(10_000_000), Plazo: 12, Tipo: "Personal", UsuarioID: juan.ID}
		vehiculo := models.Credito{Monto: decimal.NewFromInt(20_000_000), Plazo: 24, Tipo: "Vehículo", UsuarioID: maria.ID}
		if err := tx.Create(&personal).Error; err != nil {
			return fmt.Errorf("failed to seed credito: %w", err)
		}
		if err := tx.Create(&vehiculo).Error; err != nil {
			return fmt.Errorf("failed to seed credito: %w", err)
		}

		interes := models.Interes{Tasa: decimal.RequireFromString("1.5"), Tipo: "Fijo", CreditoID: personal.ID}
		if err := tx.Create(&interes).Error; err != nil {
			return fmt.Errorf("failed to seed interes: %w", err)
		}

		simulacion := models.Simulacion{
			CuotaMensual: decimal.RequireFromString("916799.93"),
			InteresTotal: decimal.RequireFromString("1001599.16"),
			SaldoFinal:   decimal.Zero,
			InteresID:    interes.ID,
		}
		if err := tx.Create(&simulacion).Error; err != nil {
			return fmt.Errorf("failed to seed simulacion: %w", err)
		}

		reporte := models.Reporte{
			Titulo:       "Resumen crédito personal",
			Fecha:        now,
			UsuarioID:    &juan.ID,
			CreditoID:    &personal.ID,
			SimulacionID: &simulacion.ID,
		}
		if err := tx.Create(&reporte).Error; err != nil {
			return fmt.Errorf("failed to seed reporte: %w", err)
		}

		h := models.Historial{
			Entidad:     models.EntidadSistema,
			Accion:      models.AccionInicializacion,
			Descripcion: "Base de datos creada y datos de ejemplo cargados",
			Fecha:       now,
		}
		if err := tx.Create(&h).Error; err != nil {
			return fmt.Errorf("failed to seed historial: %w", err)
		}

		seeded = true
		return nil
	})
	return seeded, err
}
