package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/credit-simulator/internal/audit"
	"github.com/Dan9191/credit-simulator/internal/models"
	"github.com/Dan9191/credit-simulator/internal/repository"
)

// Service groups the entity services over one repository and audit recorder.
type Service struct {
	Usuarios     *UsuarioService
	Creditos     *CreditoService
	Intereses    *InteresService
	Simulaciones *SimulacionService
	Reportes     *ReporteService
	Categorias   *CategoriaService
	Historial    *HistorialService
}

// Option customizes a Service.
type Option func(*options)

type options struct {
	now      func() time.Time
	notifier CreditoNotifier
}

// WithClock sets the clock used for audit timestamps and default dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCreditoNotifier sets who is told about newly created credits.
func WithCreditoNotifier(n CreditoNotifier) Option {
	return func(o *options) { o.notifier = n }
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, opts ...Option) *Service {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	rec := audit.NewRecorderWithClock(o.now)

	return &Service{
		Usuarios: &UsuarioService{
			entityService: newEntityService[models.Usuario, *models.Usuario](models.EntidadUsuario, repo, rec, log),
		},
		Creditos: &CreditoService{
			entityService: newEntityService[models.Credito, *models.Credito](models.EntidadCredito, repo, rec, log),
			notifier:      o.notifier,
		},
		Intereses: &InteresService{
			entityService: newEntityService[models.Interes, *models.Interes](models.EntidadInteres, repo, rec, log),
		},
		Simulaciones: &SimulacionService{
			entityService: newEntityService[models.Simulacion, *models.Simulacion](models.EntidadSimulacion, repo, rec, log),
		},
		Reportes: &ReporteService{
			entityService: newEntityService[models.Reporte, *models.Reporte](models.EntidadReporte, repo, rec, log),
			now:           o.now,
		},
		Categorias: &CategoriaService{
			entityService: newEntityService[models.Categoria, *models.Categoria](models.EntidadCategoria, repo, rec, log),
		},
		Historial: &HistorialService{repo: repo},
	}
}
