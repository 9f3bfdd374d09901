package handler

import (
	"net/http"

	"github.com/GoArmGo/ShelterApp/internal/domain"
)

func (h *ShelterHandler) ListAnimals(w http.ResponseWriter, r *http.Request) {
	animals, err := h.uc.ListAnimals(r.Context())
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, animals, h.logger)
}

func (h *ShelterHandler) AddAnimal(w http.ResponseWriter, r *http.Request) {
	var in domain.NewAnimal
	if err := h.decodeBody(r, &in, false); err != nil {
		h.logger.Warn("invalid animal body", "error", err)
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	centerID := centerIDFromContext(r.Context())
	animal, err := h.uc.AddAnimal(r.Context(), in, centerID)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	h.recordAudit(r, centerID, "animal", animal["id"].(int64))
	respondWithJSON(w, http.StatusCreated, animal, h.logger)
}

func (h *ShelterHandler) GetAnimal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Not found", h.logger)
		return
	}

	animal, err := h.uc.GetAnimal(r.Context(), id)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, animal, h.logger)
}

// UpdateAnimal applies a sparse patch; unknown fields are rejected.
func (h *ShelterHandler) UpdateAnimal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Not found", h.logger)
		return
	}

	var patch domain.AnimalPatch
	if err := h.decodeBody(r, &patch, true); err != nil {
		h.logger.Warn("invalid animal patch", "animal_id", id, "error", err)
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	centerID := centerIDFromContext(r.Context())
	animal, err := h.uc.UpdateAnimal(r.Context(), id, patch, centerID)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	h.recordAudit(r, centerID, "animal", id)
	respondWithJSON(w, http.StatusOK, animal, h.logger)
}

func (h *ShelterHandler) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Not found", h.logger)
		return
	}

	centerID := centerIDFromContext(r.Context())
	if err := h.uc.DeleteAnimal(r.Context(), id, centerID); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	h.recordAudit(r, centerID, "animal", id)
	respondWithJSON(w, http.StatusOK, map[string]int64{"id": id}, h.logger)
}
