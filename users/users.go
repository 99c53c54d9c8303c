package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"stagepass/apperr"
	"stagepass/dstore"
	"stagepass/models"
	"stagepass/utils"
	"stagepass/validation"

	"github.com/julienschmidt/httprouter"
)

// Engine owns the user lifecycle. Simpler than events: no embedded sequences,
// so updates are plain overwrites keyed on the immutable userid.
type Engine struct {
	store dstore.Store
}

func NewEngine(store dstore.Store) *Engine {
	return &Engine{store: store}
}

func (e *Engine) CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.WriteError(w, apperr.MalformedInput(err))
		return
	}
	if violations := validation.Check(user); violations != nil {
		utils.WriteError(w, apperr.Validation(violations))
		return
	}

	user.UserID = utils.GenerateID()
	user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if err := e.store.Put(r.Context(), dstore.Users, user.UserID, user); err != nil {
		utils.WriteError(w, apperr.Upstream("user store put", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, user)
}

func (e *Engine) GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("userId")

	var user models.User
	err := e.store.Get(r.Context(), dstore.Users, id, &user)
	if errors.Is(err, dstore.ErrNotFound) {
		utils.WriteError(w, apperr.NotFound())
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("user store get", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

func (e *Engine) GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users := []models.User{}
	if err := e.store.Scan(r.Context(), dstore.Users, &users); err != nil {
		utils.WriteError(w, apperr.Upstream("user store scan", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

// UpdateUser replaces the stored record with the request body; only userid and
// created_at survive from the previous item.
func (e *Engine) UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("userId")

	var payload models.User
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, apperr.MalformedInput(err))
		return
	}
	if violations := validation.Check(payload); violations != nil {
		utils.WriteError(w, apperr.Validation(violations))
		return
	}

	var existing models.User
	err := e.store.Get(r.Context(), dstore.Users, id, &existing)
	if errors.Is(err, dstore.ErrNotFound) {
		utils.WriteError(w, apperr.NotFound())
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("user store get", err))
		return
	}

	payload.UserID = existing.UserID
	payload.CreatedAt = existing.CreatedAt

	if err := e.store.Put(r.Context(), dstore.Users, id, payload); err != nil {
		utils.WriteError(w, apperr.Upstream("user store put", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payload)
}

func (e *Engine) DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("userId")

	err := e.store.Delete(r.Context(), dstore.Users, id)
	if errors.Is(err, dstore.ErrNotFound) {
		utils.WriteError(w, apperr.NotFound())
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("user store delete", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
