package handler

import (
	"net/http"

	"github.com/GoArmGo/ShelterApp/internal/domain"
)

type credentials struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login accepts credentials as query parameters (GET) or a JSON body (POST).
func (h *ShelterHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if r.Method == http.MethodGet {
		in.Login = r.URL.Query().Get("login")
		in.Password = r.URL.Query().Get("password")
		if err := h.validate.Struct(in); err != nil {
			respondWithError(w, http.StatusBadRequest, "Login and password are required", h.logger)
			return
		}
	} else if err := h.decodeBody(r, &in, false); err != nil {
		respondWithError(w, http.StatusBadRequest, "Login and password are required", h.logger)
		return
	}

	token, err := h.uc.Login(r.Context(), in.Login, in.Password)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"access_token": token}, h.logger)
}

func (h *ShelterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.NewCenter
	if err := h.decodeBody(r, &in, false); err != nil {
		h.logger.Warn("invalid registration body", "error", err)
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	center, token, err := h.uc.Register(r.Context(), in)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	id := center["id"].(int64)
	h.recordAudit(r, id, "animal_center", id)
	h.logger.Info("center registered", "center_id", id)

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"message":      "Successfully registered",
		"access_token": token,
	}, h.logger)
}
