package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/Dan9191/credit-simulator/internal/errs"
)

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// TasaReferencia returns the central bank key rate as a hint. It is never
// written to any Interes.
func (h *Handler) TasaReferencia(w http.ResponseWriter, r *http.Request) {
	if h.rates == nil {
		h.respondError(w, http.StatusServiceUnavailable, "Tasa de referencia no disponible")
		return
	}
	kr, err := h.rates.GetKeyRate(r.Context())
	if err != nil {
		h.log.Warnf("Failed to get key rate: %v", err)
		h.respondError(w, http.StatusBadGateway, "No se pudo obtener la tasa de referencia")
		return
	}
	h.respondJSON(w, http.StatusOK, kr)
}

// UploadCedula stores an identity document (multipart field "file") and
// attaches its path to the Usuario. A replaced document is removed.
func (h *Handler) UploadCedula(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.svc.Usuarios.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: falta el archivo 'file'", errs.ErrValidation))
		return
	}
	defer file.Close()

	path, err := h.docs.Store(file, filepath.Ext(header.Filename))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	previous := u.Cedula

	updated, err := h.svc.Usuarios.AttachCedula(r.Context(), id, path)
	if err != nil {
		if rmErr := h.docs.Remove(path); rmErr != nil {
			h.log.Warnf("Failed to remove orphaned document %s: %v", path, rmErr)
		}
		h.fail(w, r, err)
		return
	}
	if previous != nil && *previous != path {
		if err := h.docs.Remove(*previous); err != nil {
			h.log.Warnf("Failed to remove replaced document %s: %v", *previous, err)
		}
	}
	h.respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) AssignCategoria(w http.ResponseWriter, r *http.Request) {
	categoriaID, creditoID, err := linkIDs(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	link, err := h.svc.Categorias.Assign(r.Context(), categoriaID, creditoID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, link)
}

func (h *Handler) UnassignCategoria(w http.ResponseWriter, r *http.Request) {
	categoriaID, creditoID, err := linkIDs(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.Categorias.Unassign(r.Context(), categoriaID, creditoID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func linkIDs(r *http.Request) (uint, uint, error) {
	categoriaID, err := pathID(r, "id")
	if err != nil {
		return 0, 0, err
	}
	creditoID, err := pathID(r, "creditoId")
	if err != nil {
		return 0, 0, err
	}
	return categoriaID, creditoID, nil
}
