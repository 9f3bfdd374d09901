package handler

import (
	"net/http"

	"github.com/GoArmGo/ShelterApp/internal/domain"
)

func (h *ShelterHandler) ListSpecies(w http.ResponseWriter, r *http.Request) {
	species, err := h.uc.ListSpecies(r.Context())
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, species, h.logger)
}

func (h *ShelterHandler) AddSpecies(w http.ResponseWriter, r *http.Request) {
	var in domain.NewSpecies
	if err := h.decodeBody(r, &in, false); err != nil {
		h.logger.Warn("invalid species body", "error", err)
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	species, err := h.uc.AddSpecies(r.Context(), in)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	h.recordAudit(r, centerIDFromContext(r.Context()), "species", species["id"].(int64))
	respondWithJSON(w, http.StatusCreated, species, h.logger)
}

// GetSpecies responds with [species, [animals]].
func (h *ShelterHandler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Not found", h.logger)
		return
	}

	species, animals, err := h.uc.GetSpecies(r.Context(), id)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, []any{species, animals}, h.logger)
}
