package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/credit-simulator/internal/errs"
	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

// tickingClock returns a clock advancing one second per call.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}

type fixture struct {
	repo *repository.Repository
	svc  *Service
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	db, err := repository.Open("sqlite", filepath.Join(t.TempDir(), "svc.db"), false)
	require.NoError(t, err)
	repo := repository.NewRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Migrate(context.Background()))

	log := logrus.New()
	log.SetOutput(io.Discard)

	opts = append([]Option{WithClock(tickingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))}, opts...)
	return &fixture{repo: repo, svc: NewService(repo, log, opts...)}
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.repo.DB(context.Background()).Model(model).Count(&n).Error)
	return n
}

func (f *fixture) historial(t *testing.T) []models.Historial {
	t.Helper()
	var out []models.Historial
	require.NoError(t, f.repo.DB(context.Background()).Order("id").Find(&out).Error)
	return out
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[V any](v V) *V { return &v }

func ana() UsuarioInput {
	return UsuarioInput{
		Nombre:   "Ana",
		Ingresos: dec("2000"),
		Gastos:   dec("500"),
		Correo:   "ana@x.com",
		Telefono: "0991",
	}
}

func (f *fixture) seedChain(t *testing.T) (*models.Usuario, *models.Credito, *models.Interes, *models.Simulacion) {
	t.Helper()
	ctx := context.Background()
	u, err := f.svc.Usuarios.Create(ctx, ana())
	require.NoError(t, err)
	c, err := f.svc.Creditos.Create(ctx, CreditoInput{Monto: dec("1000"), Plazo: 12, Tipo: "Personal", UsuarioID: u.ID})
	require.NoError(t, err)
	i, err := f.svc.Intereses.Create(ctx, InteresInput{Tasa: dec("1.5"), Tipo: "Fijo", CreditoID: c.ID})
	require.NoError(t, err)
	s, err := f.svc.Simulaciones.Create(ctx, SimulacionInput{
		CuotaMensual: dec("90.50"),
		InteresTotal: dec("86.00"),
		SaldoFinal:   dec("1086.00"),
		InteresID:    i.ID,
	})
	require.NoError(t, err)
	return u, c, i, s
}

func TestCreateRecordsAudit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.svc.Usuarios.Create(ctx, ana())
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	c, err := f.svc.Creditos.Create(ctx, CreditoInput{Monto: dec("1000"), Plazo: 12, Tipo: "Personal", UsuarioID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, u.ID, c.UsuarioID)

	h := f.historial(t)
	require.Len(t, h, 2)
	assert.Equal(t, models.EntidadUsuario, h[0].Entidad)
	assert.Equal(t, models.AccionCrear, h[0].Accion)
	assert.Contains(t, h[0].Descripcion, "Alta de Usuario 'Ana'")
	assert.Equal(t, models.EntidadCredito, h[1].Entidad)
	assert.Contains(t, h[1].Descripcion, "usuario_id=")
}

func TestCreateWithMissingReferenceWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Creditos.Create(context.Background(), CreditoInput{Monto: dec("500"), Plazo: 6, Tipo: "Personal", UsuarioID: 99999})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrReferenceNotFound))
	assert.Zero(t, f.count(t, &models.Credito{}))
	assert.Zero(t, f.count(t, &models.Historial{}))
}

func TestValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := ana()
	in.Ingresos = dec("-1")
	_, err := f.svc.Usuarios.Create(ctx, in)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.Contains(t, err.Error(), "ingresos")

	in = ana()
	in.Nombre = "   "
	_, err = f.svc.Usuarios.Create(ctx, in)
	assert.True(t, errors.Is(err, errs.ErrValidation))

	_, err = f.svc.Creditos.Create(ctx, CreditoInput{Monto: dec("0"), Plazo: 12, Tipo: "Personal", UsuarioID: 1})
	assert.True(t, errors.Is(err, errs.ErrValidation))

	_, err = f.svc.Intereses.Create(ctx, InteresInput{Tasa: dec("100.01"), Tipo: "Fijo", CreditoID: 1})
	assert.True(t, errors.Is(err, errs.ErrValidation))

	_, err = f.svc.Usuarios.Patch(ctx, 1, UsuarioPatch{Gastos: ptr(dec("-3"))})
	assert.True(t, errors.Is(err, errs.ErrValidation))

	assert.Zero(t, f.count(t, &models.Historial{}))
}

func TestParseTasa(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.5", want: "1.5"},
		{in: " 100 ", want: "100"},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "100.5", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTasa(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errs.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)))
		})
	}
}

func TestUpdateReplacesAllFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, c, _, _ := f.seedChain(t)

	other := ana()
	other.Nombre = "Luis"
	u2, err := f.svc.Usuarios.Create(ctx, other)
	require.NoError(t, err)

	got, err := f.svc.Creditos.Update(ctx, c.ID, CreditoInput{Monto: dec("2500"), Plazo: 24, Tipo: "Vehículo", UsuarioID: u2.ID})
	require.NoError(t, err)
	assert.True(t, got.Monto.Equal(dec("2500")))
	assert.Equal(t, u2.ID, got.UsuarioID)
	assert.Nil(t, got.Descripcion)

	_, err = f.svc.Creditos.Update(ctx, c.ID, CreditoInput{Monto: dec("1"), Plazo: 1, Tipo: "X", UsuarioID: 424242})
	assert.True(t, errors.Is(err, errs.ErrReferenceNotFound))

	stored, err := f.svc.Creditos.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, u2.ID, stored.UsuarioID)
	assert.NotEqual(t, u.ID, stored.UsuarioID)

	_, err = f.svc.Creditos.Update(ctx, 777, CreditoInput{Monto: dec("1"), Plazo: 1, Tipo: "X", UsuarioID: u.ID})
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	h := f.historial(t)
	last := h[len(h)-1]
	assert.Equal(t, models.AccionActualizar, last.Accion)
	assert.Equal(t, models.EntidadCredito, last.Entidad)
}

func TestPatchRecordsChangedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.svc.Usuarios.Create(ctx, ana())
	require.NoError(t, err)

	got, err := f.svc.Usuarios.Patch(ctx, u.ID, UsuarioPatch{Ingresos: ptr(dec("2500")), Telefono: ptr("0991")})
	require.NoError(t, err)
	assert.True(t, got.Ingresos.Equal(dec("2500")))
	assert.Equal(t, "ana@x.com", got.Correo)

	h := f.historial(t)
	require.Len(t, h, 2)
	assert.Equal(t, models.AccionActualizarParcial, h[1].Accion)
	assert.Contains(t, h[1].Descripcion, "Campos modificados: ingresos")
	assert.NotContains(t, h[1].Descripcion, "telefono")
}

func TestNoOpPatchWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.svc.Usuarios.Create(ctx, ana())
	require.NoError(t, err)

	got, err := f.svc.Usuarios.Patch(ctx, u.ID, UsuarioPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Nombre)

	_, err = f.svc.Usuarios.Patch(ctx, u.ID, UsuarioPatch{Nombre: ptr("Ana"), Ingresos: ptr(dec("2000.00"))})
	require.NoError(t, err)

	assert.Len(t, f.historial(t), 1)
}

func TestPatchMissingRecord(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Simulaciones.Patch(context.Background(), 5, SimulacionPatch{CuotaMensual: ptr(dec("10"))})
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestDeleteBlockedByDependents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, c, i, s := f.seedChain(t)

	err := f.svc.Creditos.Delete(ctx, c.ID)
	assert.True(t, errors.Is(err, errs.ErrHasDependents))
	err = f.svc.Usuarios.Delete(ctx, u.ID)
	assert.True(t, errors.Is(err, errs.ErrHasDependents))
	err = f.svc.Intereses.Delete(ctx, i.ID)
	assert.True(t, errors.Is(err, errs.ErrHasDependents))

	_, err = f.svc.Creditos.Get(ctx, c.ID)
	require.NoError(t, err)

	// Unwinding bottom-up succeeds.
	require.NoError(t, f.svc.Simulaciones.Delete(ctx, s.ID))
	require.NoError(t, f.svc.Intereses.Delete(ctx, i.ID))
	require.NoError(t, f.svc.Creditos.Delete(ctx, c.ID))
	require.NoError(t, f.svc.Usuarios.Delete(ctx, u.ID))

	_, err = f.svc.Usuarios.Get(ctx, u.ID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	h := f.historial(t)
	last := h[len(h)-1]
	assert.Equal(t, models.AccionEliminar, last.Accion)
	assert.Equal(t, "Baja de Usuario 'Ana' (id 1)", last.Descripcion)
}

func TestDeleteMissingRecord(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Reportes.Delete(context.Background(), 3)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.Zero(t, f.count(t, &models.Historial{}))
}

func TestSimulacionBlockedByReporte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, _, s := f.seedChain(t)

	_, err := f.svc.Reportes.Create(ctx, ReporteInput{Titulo: "Resumen", SimulacionID: &s.ID})
	require.NoError(t, err)

	err = f.svc.Simulaciones.Delete(ctx, s.ID)
	assert.True(t, errors.Is(err, errs.ErrHasDependents))
}

func TestReporteOptionalReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, c, _, _ := f.seedChain(t)

	r, err := f.svc.Reportes.Create(ctx, ReporteInput{Titulo: "Sin vínculos"})
	require.NoError(t, err)
	assert.Nil(t, r.UsuarioID)
	assert.False(t, r.Fecha.IsZero())

	_, err = f.svc.Reportes.Create(ctx, ReporteInput{Titulo: "Malo", CreditoID: ptr(uint(555))})
	assert.True(t, errors.Is(err, errs.ErrReferenceNotFound))

	fecha := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	r2, err := f.svc.Reportes.Create(ctx, ReporteInput{Titulo: "Mensual", Fecha: &fecha, UsuarioID: &u.ID, CreditoID: &c.ID})
	require.NoError(t, err)

	got, err := f.svc.Reportes.List(ctx, ReporteFilter{UsuarioID: &u.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r2.ID, got[0].ID)

	got, err = f.svc.Reportes.List(ctx, ReporteFilter{TituloContiene: "mensual"})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.svc.Reportes.Patch(ctx, r.ID, ReportePatch{SimulacionID: ptr(uint(909))})
	assert.True(t, errors.Is(err, errs.ErrReferenceNotFound))

	patched, err := f.svc.Reportes.Patch(ctx, r.ID, ReportePatch{UsuarioID: &u.ID})
	require.NoError(t, err)
	require.NotNil(t, patched.UsuarioID)
	assert.Equal(t, u.ID, *patched.UsuarioID)
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _, _, _ := f.seedChain(t)
	_, err := f.svc.Creditos.Create(ctx, CreditoInput{Monto: dec("15000"), Plazo: 48, Tipo: "Vehículo", UsuarioID: u.ID})
	require.NoError(t, err)

	got, err := f.svc.Creditos.List(ctx, CreditoFilter{MontoMin: ptr(dec("5000"))})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Vehículo", got[0].Tipo)

	got, err = f.svc.Creditos.List(ctx, CreditoFilter{UsuarioID: &u.ID, Tipo: "Personal"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	users, err := f.svc.Usuarios.List(ctx, UsuarioFilter{NombreContiene: "An"})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	users, err = f.svc.Usuarios.List(ctx, UsuarioFilter{NombreContiene: "an"})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCategoriaDuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hogar, err := f.svc.Categorias.Create(ctx, CategoriaInput{Nombre: "Hogar"})
	require.NoError(t, err)

	_, err = f.svc.Categorias.Create(ctx, CategoriaInput{Nombre: "Hogar"})
	assert.True(t, errors.Is(err, errs.ErrDuplicateName))

	// Names compare exactly.
	_, err = f.svc.Categorias.Create(ctx, CategoriaInput{Nombre: "hogar"})
	require.NoError(t, err)

	_, err = f.svc.Categorias.Patch(ctx, hogar.ID, CategoriaPatch{Nombre: ptr("hogar")})
	assert.True(t, errors.Is(err, errs.ErrDuplicateName))

	// Keeping its own name is not a conflict.
	_, err = f.svc.Categorias.Update(ctx, hogar.ID, CategoriaInput{Nombre: "Hogar", Descripcion: ptr("vivienda")})
	require.NoError(t, err)
}

func TestCategoriaAssociation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, c, _, _ := f.seedChain(t)

	cat, err := f.svc.Categorias.Create(ctx, CategoriaInput{Nombre: "Consumo"})
	require.NoError(t, err)

	_, err = f.svc.Categorias.Assign(ctx, cat.ID, c.ID)
	require.NoError(t, err)
	_, err = f.svc.Categorias.Assign(ctx, cat.ID, c.ID)
	assert.True(t, errors.Is(err, errs.ErrDuplicateAssociation))
	_, err = f.svc.Categorias.Assign(ctx, cat.ID, 8080)
	assert.True(t, errors.Is(err, errs.ErrReferenceNotFound))
	_, err = f.svc.Categorias.Assign(ctx, 8080, c.ID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	cats, err := f.svc.Categorias.CategoriasDeCredito(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Consumo", cats[0].Nombre)

	creds, err := f.svc.Categorias.CreditosDeCategoria(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, c.ID, creds[0].ID)

	h := f.historial(t)
	last := h[len(h)-1]
	assert.Equal(t, models.EntidadCreditoCategoria, last.Entidad)
	assert.Equal(t, models.AccionAsignar, last.Accion)

	require.NoError(t, f.svc.Categorias.Unassign(ctx, cat.ID, c.ID))
	err = f.svc.Categorias.Unassign(ctx, cat.ID, c.ID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.Zero(t, f.count(t, &models.CreditoCategoria{}))
}

func TestCategoriaDeleteCascadesLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, c, _, _ := f.seedChain(t)

	cat, err := f.svc.Categorias.Create(ctx, CategoriaInput{Nombre: "Educación"})
	require.NoError(t, err)
	_, err = f.svc.Categorias.Assign(ctx, cat.ID, c.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Categorias.Delete(ctx, cat.ID))
	assert.Zero(t, f.count(t, &models.CreditoCategoria{}))

	_, err = f.svc.Creditos.Get(ctx, c.ID)
	require.NoError(t, err)
}

type recordingNotifier struct {
	calls []uint
	err   error
}

func (n *recordingNotifier) CreditoCreado(_ context.Context, u *models.Usuario, c *models.Credito) error {
	n.calls = append(n.calls, c.ID)
	return n.err
}

func TestCreditoNotifier(t *testing.T) {
	n := &recordingNotifier{err: errors.New("smtp down")}
	f := newFixture(t, WithCreditoNotifier(n))
	ctx := context.Background()

	u, err := f.svc.Usuarios.Create(ctx, ana())
	require.NoError(t, err)
	c, err := f.svc.Creditos.Create(ctx, CreditoInput{Monto: dec("700"), Plazo: 3, Tipo: "Personal", UsuarioID: u.ID})
	require.NoError(t, err, "notification failures must not fail the create")
	assert.Equal(t, []uint{c.ID}, n.calls)

	_, err = f.svc.Creditos.Create(ctx, CreditoInput{Monto: dec("700"), Plazo: 3, Tipo: "Personal", UsuarioID: 31337})
	require.Error(t, err)
	assert.Len(t, n.calls, 1)
}

func TestHistorialOrderingAndPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedChain(t)

	all, err := f.svc.Historial.List(ctx, HistorialFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, models.EntidadSimulacion, all[0].Entidad)
	assert.Equal(t, models.EntidadUsuario, all[3].Entidad)

	page, err := f.svc.Historial.List(ctx, HistorialFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[1].ID, page[0].ID)

	only, err := f.svc.Historial.List(ctx, HistorialFilter{Entidad: models.EntidadCredito, Accion: models.AccionCrear})
	require.NoError(t, err)
	require.Len(t, only, 1)

	byText, err := f.svc.Historial.List(ctx, HistorialFilter{DescripcionContiene: "Interés"})
	require.NoError(t, err)
	assert.Len(t, byText, 1)

	h, err := f.svc.Historial.Get(ctx, only[0].ID)
	require.NoError(t, err)
	assert.Equal(t, only[0].Descripcion, h.Descripcion)

	_, err = f.svc.Historial.Get(ctx, 1000)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestCreditLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.svc.Usuarios.Create(ctx, UsuarioInput{
		Nombre: "Ana", Ingresos: dec("1000"), Gastos: dec("200"), Correo: "ana@x.com", Telefono: "0991",
	})
	require.NoError(t, err)
	h := f.historial(t)
	require.Len(t, h, 1)
	assert.Equal(t, "Usuario", h[0].Entidad)
	assert.Equal(t, "CREAR", h[0].Accion)

	c, err := f.svc.Creditos.Create(ctx, CreditoInput{Monto: dec("5000"), Plazo: 12, Tipo: "Personal", UsuarioID: u.ID})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	_, err = f.svc.Creditos.Create(ctx, CreditoInput{Monto: dec("5000"), Plazo: 12, Tipo: "Personal", UsuarioID: 99999})
	assert.True(t, errors.Is(err, errs.ErrReferenceNotFound))
	assert.EqualValues(t, 1, f.count(t, &models.Credito{}))
	assert.EqualValues(t, 2, f.count(t, &models.Historial{}))

	i, err := f.svc.Intereses.Create(ctx, InteresInput{Tasa: dec("5.0"), Tipo: "Fijo", CreditoID: c.ID})
	require.NoError(t, err)
	_, err = f.svc.Simulaciones.Create(ctx, SimulacionInput{
		CuotaMensual: dec("450"), InteresTotal: dec("400"), SaldoFinal: dec("5400"), InteresID: i.ID,
	})
	require.NoError(t, err)

	before := f.count(t, &models.Historial{})
	err = f.svc.Creditos.Delete(ctx, c.ID)
	assert.True(t, errors.Is(err, errs.ErrHasDependents))
	assert.Equal(t, before, f.count(t, &models.Historial{}))
	assert.EqualValues(t, 1, f.count(t, &models.Credito{}))
}

func TestMissingParentWritesNothing(t *testing.T) {
	tests := []struct {
		name   string
		create func(ctx context.Context, svc *Service) error
		model  interface{}
	}{
		{
			name: "interes without credito",
			create: func(ctx context.Context, svc *Service) error {
				_, err := svc.Intereses.Create(ctx, InteresInput{Tasa: dec("5"), Tipo: "Fijo", CreditoID: 4242})
				return err
			},
			model: &models.Interes{},
		},
		{
			name: "simulacion without interes",
			create: func(ctx context.Context, svc *Service) error {
				_, err := svc.Simulaciones.Create(ctx, SimulacionInput{
					CuotaMensual: dec("450"), InteresTotal: dec("400"), SaldoFinal: dec("5400"), InteresID: 4242,
				})
				return err
			},
			model: &models.Simulacion{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			err := tt.create(context.Background(), f.svc)
			assert.True(t, errors.Is(err, errs.ErrReferenceNotFound), "got %v", err)
			assert.Zero(t, f.count(t, tt.model))
			assert.Zero(t, f.count(t, &models.Historial{}))
		})
	}
}

func TestCreditoHasOneInteres(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, c, i, _ := f.seedChain(t)

	_, err := f.svc.Intereses.Create(ctx, InteresInput{Tasa: dec("2"), Tipo: "Variable", CreditoID: c.ID})
	assert.True(t, errors.Is(err, errs.ErrDuplicateAssociation), "got %v", err)
	assert.EqualValues(t, 1, f.count(t, &models.Interes{}))

	otro, err := f.svc.Creditos.Create(ctx, CreditoInput{Monto: dec("300"), Plazo: 3, Tipo: "Personal", UsuarioID: u.ID})
	require.NoError(t, err)
	j, err := f.svc.Intereses.Create(ctx, InteresInput{Tasa: dec("3"), Tipo: "Fijo", CreditoID: otro.ID})
	require.NoError(t, err)

	_, err = f.svc.Intereses.Update(ctx, j.ID, InteresInput{Tasa: dec("3"), Tipo: "Fijo", CreditoID: c.ID})
	assert.True(t, errors.Is(err, errs.ErrDuplicateAssociation))
	_, err = f.svc.Intereses.Patch(ctx, j.ID, InteresPatch{CreditoID: &c.ID})
	assert.True(t, errors.Is(err, errs.ErrDuplicateAssociation))

	// Keeping its own credito is not a conflict.
	got, err := f.svc.Intereses.Update(ctx, i.ID, InteresInput{Tasa: dec("1.75"), Tipo: "Fijo", CreditoID: c.ID})
	require.NoError(t, err)
	assert.True(t, got.Tasa.Equal(dec("1.75")))
}

func TestDecimalBoundsAreExact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, c, i, _ := f.seedChain(t)

	_, err := f.svc.Intereses.Create(ctx, InteresInput{Tasa: dec("100.00000000000000001"), Tipo: "Fijo", CreditoID: c.ID})
	assert.True(t, errors.Is(err, errs.ErrValidation), "got %v", err)
	_, parseErr := ParseTasa("100.00000000000000001")
	assert.True(t, errors.Is(parseErr, errs.ErrValidation))

	got, err := f.svc.Intereses.Patch(ctx, i.ID, InteresPatch{Tasa: ptr(dec("100"))})
	require.NoError(t, err)
	assert.True(t, got.Tasa.Equal(dec("100")))

	_, err = f.svc.Intereses.Patch(ctx, i.ID, InteresPatch{Tasa: ptr(dec("0.0000000000000000000001"))})
	require.NoError(t, err)
	_, err = f.svc.Intereses.Patch(ctx, i.ID, InteresPatch{Tasa: ptr(dec("0"))})
	assert.True(t, errors.Is(err, errs.ErrValidation))
}
