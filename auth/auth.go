package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"stagepass/apperr"
	"stagepass/identity"
	"stagepass/models"
	"stagepass/utils"
	"stagepass/validation"

	"github.com/julienschmidt/httprouter"
)

// Handler proxies the auth routes to the hosted identity provider. Payloads are
// validated exhaustively before anything leaves the process.
type Handler struct {
	idp identity.Gateway
}

func NewHandler(idp identity.Gateway) *Handler {
	return &Handler{idp: idp}
}

func decodeAndCheck(w http.ResponseWriter, r *http.Request, payload any) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		utils.WriteError(w, apperr.MalformedInput(err))
		return false
	}
	if violations := validation.Check(payload); violations != nil {
		utils.WriteError(w, apperr.Validation(violations))
		return false
	}
	return true
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.SignupRequest
	if !decodeAndCheck(w, r, &req) {
		return
	}

	err := h.idp.SignUp(r.Context(), req)
	if errors.Is(err, identity.ErrRejected) {
		utils.RespondWithError(w, http.StatusBadRequest, "sign up rejected")
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("identity sign-up", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.SigninRequest
	if !decodeAndCheck(w, r, &req) {
		return
	}

	token, err := h.idp.SignIn(r.Context(), req.Username, req.Password)
	if errors.Is(err, identity.ErrRejected) {
		utils.WriteError(w, apperr.Auth())
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("identity sign-in", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Signin successful",
		"token":   token,
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.VerifyRequest
	if !decodeAndCheck(w, r, &req) {
		return
	}

	err := h.idp.ConfirmSignUp(r.Context(), req.Username, req.Code)
	if errors.Is(err, identity.ErrRejected) {
		utils.RespondWithError(w, http.StatusBadRequest, "verification rejected")
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("identity confirm sign-up", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.ForgotPasswordRequest
	if !decodeAndCheck(w, r, &req) {
		return
	}

	err := h.idp.ForgotPassword(r.Context(), req.Username)
	if errors.Is(err, identity.ErrRejected) {
		utils.RespondWithError(w, http.StatusBadRequest, "password reset rejected")
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("identity forgot-password", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) ConfirmPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.ConfirmPasswordRequest
	if !decodeAndCheck(w, r, &req) {
		return
	}

	err := h.idp.ConfirmForgotPassword(r.Context(), req.Username, req.Password, req.Code)
	if errors.Is(err, identity.ErrRejected) {
		utils.RespondWithError(w, http.StatusBadRequest, "password confirmation rejected")
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("identity confirm-password", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}
