package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/credit-simulator/internal/errs"
	"github.com/Dan9191/credit-simulator/internal/integrations/cbr"
	"github.com/Dan9191/credit-simulator/internal/service"
)

// RateSource supplies the reference key rate shown next to Interes forms.
type RateSource interface {
	GetKeyRate(ctx context.Context) (*cbr.KeyRate, error)
}

// DocumentStore keeps uploaded identity documents.
type DocumentStore interface {
	Store(r io.Reader, ext string) (string, error)
	Remove(path string) error
}

type Handler struct {
	svc   *service.Service
	docs  DocumentStore
	rates RateSource
	log   *logrus.Logger
}

func NewHandler(svc *service.Service, docs DocumentStore, rates RateSource, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, docs: docs, rates: rates, log: log}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.log.Errorf("Error marshalling JSON: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func (h *Handler) respondError(w http.ResponseWriter, code int, message string) {
	h.respondJSON(w, code, map[string]string{"error": message})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrReferenceNotFound), errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrDuplicateName),
		errors.Is(err, errs.ErrDuplicateAssociation),
		errors.Is(err, errs.ErrHasDependents):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		h.respondError(w, status, "Internal server error")
		return
	}
	h.respondError(w, status, err.Error())
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: identificador '%s' inválido", errs.ErrValidation, raw)
	}
	return uint(id), nil
}

func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: cuerpo JSON inválido: %v", errs.ErrValidation, err)
	}
	return nil
}

func createHandler[I, O any](h *Handler, fn func(context.Context, I) (O, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in I
		if err := decodeBody(r, &in); err != nil {
			h.fail(w, r, err)
			return
		}
		out, err := fn(r.Context(), in)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusCreated, out)
	}
}

func getHandler[O any](h *Handler, fn func(context.Context, uint) (O, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		out, err := fn(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusOK, out)
	}
}

// updateHandler serves both PUT and PATCH; I decides which.
func updateHandler[I, O any](h *Handler, fn func(context.Context, uint, I) (O, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		var in I
		if err := decodeBody(r, &in); err != nil {
			h.fail(w, r, err)
			return
		}
		out, err := fn(r.Context(), id, in)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusOK, out)
	}
}

func deleteHandler(h *Handler, fn func(context.Context, uint) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if err := fn(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listHandler[F, O any](h *Handler, parse func(*queryParams) F, fn func(context.Context, F) ([]O, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		f := parse(q)
		if q.err != nil {
			h.fail(w, r, q.err)
			return
		}
		out, err := fn(r.Context(), f)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if out == nil {
			out = []O{}
		}
		h.respondJSON(w, http.StatusOK, out)
	}
}
