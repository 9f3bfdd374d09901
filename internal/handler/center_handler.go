package handler

import "net/http"

func (h *ShelterHandler) ListCenters(w http.ResponseWriter, r *http.Request) {
	centers, err := h.uc.ListCenters(r.Context())
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, centers, h.logger)
}

// GetCenter responds with [center, [animals]].
func (h *ShelterHandler) GetCenter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Not found", h.logger)
		return
	}

	center, animals, err := h.uc.GetCenter(r.Context(), id)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, []any{center, animals}, h.logger)
}
