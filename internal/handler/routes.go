package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dan9191/credit-simulator/internal/service"
)

// Routes registers every endpoint on r.
func (h *Handler) Routes(r *mux.Router) {
	s := h.svc

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/tasa-referencia", h.TasaReferencia).Methods(http.MethodGet)

	r.HandleFunc("/usuarios", listHandler(h, usuarioFilter, s.Usuarios.List)).Methods(http.MethodGet)
	r.HandleFunc("/usuarios", createHandler(h, s.Usuarios.Create)).Methods(http.MethodPost)
	r.HandleFunc("/usuarios/{id}", getHandler(h, s.Usuarios.Get)).Methods(http.MethodGet)
	r.HandleFunc("/usuarios/{id}", updateHandler(h, s.Usuarios.Update)).Methods(http.MethodPut)
	r.HandleFunc("/usuarios/{id}", updateHandler(h, s.Usuarios.Patch)).Methods(http.MethodPatch)
	r.HandleFunc("/usuarios/{id}", deleteHandler(h, s.Usuarios.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/usuarios/{id}/cedula", h.UploadCedula).Methods(http.MethodPost)

	r.HandleFunc("/creditos", listHandler(h, creditoFilter, s.Creditos.List)).Methods(http.MethodGet)
	r.HandleFunc("/creditos", createHandler(h, s.Creditos.Create)).Methods(http.MethodPost)
	r.HandleFunc("/creditos/{id}", getHandler(h, s.Creditos.Get)).Methods(http.MethodGet)
	r.HandleFunc("/creditos/{id}", updateHandler(h, s.Creditos.Update)).Methods(http.MethodPut)
	r.HandleFunc("/creditos/{id}", updateHandler(h, s.Creditos.Patch)).Methods(http.MethodPatch)
	r.HandleFunc("/creditos/{id}", deleteHandler(h, s.Creditos.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/creditos/{id}/categorias", getHandler(h, s.Categorias.CategoriasDeCredito)).Methods(http.MethodGet)

	r.HandleFunc("/intereses", listHandler(h, interesFilter, s.Intereses.List)).Methods(http.MethodGet)
	r.HandleFunc("/intereses", createHandler(h, s.Intereses.Create)).Methods(http.MethodPost)
	r.HandleFunc("/intereses/{id}", getHandler(h, s.Intereses.Get)).Methods(http.MethodGet)
	r.HandleFunc("/intereses/{id}", updateHandler(h, s.Intereses.Update)).Methods(http.MethodPut)
	r.HandleFunc("/intereses/{id}", updateHandler(h, s.Intereses.Patch)).Methods(http.MethodPatch)
	r.HandleFunc("/intereses/{id}", deleteHandler(h, s.Intereses.Delete)).Methods(http.MethodDelete)

	r.HandleFunc("/simulaciones", listHandler(h, simulacionFilter, s.Simulaciones.List)).Methods(http.MethodGet)
	r.HandleFunc("/simulaciones", createHandler(h, s.Simulaciones.Create)).Methods(http.MethodPost)
	r.HandleFunc("/simulaciones/{id}", getHandler(h, s.Simulaciones.Get)).Methods(http.MethodGet)
	r.HandleFunc("/simulaciones/{id}", updateHandler(h, s.Simulaciones.Update)).Methods(http.MethodPut)
	r.HandleFunc("/simulaciones/{id}", updateHandler(h, s.Simulaciones.Patch)).Methods(http.MethodPatch)
	r.HandleFunc("/simulaciones/{id}", deleteHandler(h, s.Simulaciones.Delete)).Methods(http.MethodDelete)

	r.HandleFunc("/reportes", listHandler(h, reporteFilter, s.Reportes.List)).Methods(http.MethodGet)
	r.HandleFunc("/reportes", createHandler(h, s.Reportes.Create)).Methods(http.MethodPost)
	r.HandleFunc("/reportes/{id}", getHandler(h, s.Reportes.Get)).Methods(http.MethodGet)
	r.HandleFunc("/reportes/{id}", updateHandler(h, s.Reportes.Update)).Methods(http.MethodPut)
	r.HandleFunc("/reportes/{id}", updateHandler(h, s.Reportes.Patch)).Methods(http.MethodPatch)
	r.HandleFunc("/reportes/{id}", deleteHandler(h, s.Reportes.Delete)).Methods(http.MethodDelete)

	r.HandleFunc("/categorias", listHandler(h, categoriaFilter, s.Categorias.List)).Methods(http.MethodGet)
	r.HandleFunc("/categorias", createHandler(h, s.Categorias.Create)).Methods(http.MethodPost)
	r.HandleFunc("/categorias/{id}", getHandler(h, s.Categorias.Get)).Methods(http.MethodGet)
	r.HandleFunc("/categorias/{id}", updateHandler(h, s.Categorias.Update)).Methods(http.MethodPut)
	r.HandleFunc("/categorias/{id}", updateHandler(h, s.Categorias.Patch)).Methods(http.MethodPatch)
	r.HandleFunc("/categorias/{id}", deleteHandler(h, s.Categorias.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/categorias/{id}/creditos", getHandler(h, s.Categorias.CreditosDeCategoria)).Methods(http.MethodGet)
	r.HandleFunc("/categorias/{id}/creditos/{creditoId}", h.AssignCategoria).Methods(http.MethodPost)
	r.HandleFunc("/categorias/{id}/creditos/{creditoId}", h.UnassignCategoria).Methods(http.MethodDelete)

	r.HandleFunc("/historial", listHandler(h, historialFilter, s.Historial.List)).Methods(http.MethodGet)
	r.HandleFunc("/historial/{id}", getHandler(h, s.Historial.Get)).Methods(http.MethodGet)
}

func usuarioFilter(q *queryParams) service.UsuarioFilter {
	return service.UsuarioFilter{
		NombreContiene: q.str("nombre"),
		IngresosMin:    q.amount("ingresos_min"),
		IngresosMax:    q.amount("ingresos_max"),
	}
}

func creditoFilter(q *queryParams) service.CreditoFilter {
	return service.CreditoFilter{
		UsuarioID: q.id("usuario_id"),
		Tipo:      q.str("tipo"),
		MontoMin:  q.amount("monto_min"),
		MontoMax:  q.amount("monto_max"),
	}
}

func interesFilter(q *queryParams) service.InteresFilter {
	return service.InteresFilter{
		CreditoID: q.id("credito_id"),
		Tipo:      q.str("tipo"),
		TasaMin:   q.amount("tasa_min"),
		TasaMax:   q.amount("tasa_max"),
	}
}

func simulacionFilter(q *queryParams) service.SimulacionFilter {
	return service.SimulacionFilter{
		InteresID: q.id("interes_id"),
		CuotaMin:  q.amount("cuota_min"),
		CuotaMax:  q.amount("cuota_max"),
	}
}

func reporteFilter(q *queryParams) service.ReporteFilter {
	return service.ReporteFilter{
		UsuarioID:      q.id("usuario_id"),
		CreditoID:      q.id("credito_id"),
		SimulacionID:   q.id("simulacion_id"),
		Desde:          q.since("desde"),
		Hasta:          q.until("hasta"),
		TituloContiene: q.str("titulo"),
	}
}

func categoriaFilter(q *queryParams) service.CategoriaFilter {
	return service.CategoriaFilter{NombreContiene: q.str("nombre")}
}

func historialFilter(q *queryParams) service.HistorialFilter {
	return service.HistorialFilter{
		Entidad:             q.str("entidad"),
		Accion:              q.str("accion"),
		DescripcionContiene: q.str("descripcion"),
		Desde:               q.since("desde"),
		Hasta:               q.until("hasta"),
		Limit:               q.integer("limit"),
		Offset:              q.integer("offset"),
	}
}
