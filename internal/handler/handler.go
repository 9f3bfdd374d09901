package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/GoArmGo/ShelterApp/internal/core/ports"
	"github.com/GoArmGo/ShelterApp/internal/messaging/payloads"
	"github.com/GoArmGo/ShelterApp/internal/usecase"
)

// ShelterHandler serves the shelter HTTP API.
type ShelterHandler struct {
	uc       usecase.ShelterUseCase
	audit    ports.AuditRecorder
	validate *validator.Validate
	logger   *slog.Logger
}

func NewShelterHandler(uc usecase.ShelterUseCase, audit ports.AuditRecorder, logger *slog.Logger) *ShelterHandler {
	return &ShelterHandler{
		uc:       uc,
		audit:    audit,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// respondWithJSON writes payload as the JSON response body.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError writes {"message": message}.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"message": message}, logger)
}

// respondWithUseCaseError maps calling-layer errors onto statuses; anything unknown is a 500.
func (h *ShelterHandler) respondWithUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found", h.logger)
	case errors.Is(err, usecase.ErrUnknownLogin):
		respondWithError(w, http.StatusBadRequest, "No user with such login", h.logger)
	case errors.Is(err, usecase.ErrInvalidPassword):
		respondWithError(w, http.StatusBadRequest, "Incorrect password", h.logger)
	case errors.Is(err, usecase.ErrLoginTaken):
		respondWithError(w, http.StatusBadRequest, "This user name is already taken", h.logger)
	case errors.Is(err, usecase.ErrSpeciesTaken):
		respondWithError(w, http.StatusBadRequest, "This species is already taken", h.logger)
	case errors.Is(err, usecase.ErrUnknownSpecies):
		respondWithError(w, http.StatusBadRequest, "No such specie", h.logger)
	case errors.Is(err, usecase.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Forbidden", h.logger)
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}

// decodeBody reads a JSON object into dst and validates it. Explicit nulls are
// rejected since every body field is typed. With strict set, fields dst does not
// declare are rejected too.
func (h *ShelterHandler) decodeBody(r *http.Request, dst any, strict bool) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	for name, value := range fields {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("invalid request body: %s must not be null", name)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID parses {id}; a malformed id cannot match any entity.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *ShelterHandler) recordAudit(r *http.Request, centerID int64, entityType string, entityID int64) {
	h.audit.RecordAudit(r.Context(), payloads.AuditEvent{
		Method:     r.Method,
		URL:        r.URL.RequestURI(),
		CenterID:   centerID,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  time.Now().UTC(),
	})
}

// Index is the liveness greeting.
func (h *ShelterHandler) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello"))
}

func (h *ShelterHandler) Health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}
