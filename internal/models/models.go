package models

// Auditable is implemented by every entity whose mutations are written to the
// Historial log.
type Auditable interface {
	GetID() uint
	// Entidad is the name stored in Historial.Entidad.
	Entidad() string
	// Label identifies the record in human-readable audit descriptions.
	Label() string
}

// All lists every table-backed model in migration order.
func All() []interface{} {
	return []interface{}{
		&Usuario{},
		&Credito{},
		&Interes{},
		&Simulacion{},
		&Reporte{},
		&Categoria{},
		&CreditoCategoria{},
		&Historial{},
	}
}
