package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"stagepass/apperr"
	"stagepass/dstore"
	"stagepass/models"
	"stagepass/rdx"
	"stagepass/utils"
	"stagepass/validation"

	"github.com/julienschmidt/httprouter"
)

// Engine owns the event lifecycle: create, fetch, list, book, update, delete.
// The store is the source of truth; the cache only serves single-event reads.
type Engine struct {
	store dstore.Store
	cache *rdx.Cache
}

func NewEngine(store dstore.Store, cache *rdx.Cache) *Engine {
	return &Engine{store: store, cache: cache}
}

func (e *Engine) CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.WriteError(w, apperr.MalformedInput(err))
		return
	}
	if violations := validation.Check(event); violations != nil {
		utils.WriteError(w, apperr.Validation(violations))
		return
	}

	event.EventID = utils.GenerateID()
	event.Attendees = []models.Attendee{} // bookings append later; payload attendees are ignored
	event.Version = 1
	// millisecond precision survives the bson round trip
	event.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if err := e.store.Put(r.Context(), dstore.Events, event.EventID, event); err != nil {
		utils.WriteError(w, apperr.Upstream("event store put", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, event)
}

func (e *Engine) GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("eventId")

	var event models.Event
	if e.cache != nil && e.cache.GetEvent(r.Context(), id, &event) {
		utils.RespondWithJSON(w, http.StatusOK, event)
		return
	}

	err := e.store.Get(r.Context(), dstore.Events, id, &event)
	if errors.Is(err, dstore.ErrNotFound) {
		utils.WriteError(w, apperr.NotFound())
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("event store get", err))
		return
	}

	if e.cache != nil {
		e.cache.SetEvent(r.Context(), id, event)
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// GetEvents returns an unordered snapshot of every stored event.
func (e *Engine) GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	events := []models.Event{}
	if err := e.store.Scan(r.Context(), dstore.Events, &events); err != nil {
		utils.WriteError(w, apperr.Upstream("event store scan", err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, events)
}

func (e *Engine) UpdateEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("eventId")

	var payload models.Event
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, apperr.MalformedInput(err))
		return
	}
	if violations := validation.Check(payload); violations != nil {
		utils.WriteError(w, apperr.Validation(violations))
		return
	}

	// eventid, attendees and created_at are immutable through this path
	event, err := e.mutate(r.Context(), id, func(ev *models.Event) {
		ev.Title = payload.Title
		ev.Description = payload.Description
		ev.Artist = payload.Artist
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if e.cache != nil {
		e.cache.DelEvent(r.Context(), id)
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

func (e *Engine) DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("eventId")

	err := e.store.Delete(r.Context(), dstore.Events, id)
	if errors.Is(err, dstore.ErrNotFound) {
		utils.WriteError(w, apperr.NotFound())
		return
	}
	if err != nil {
		utils.WriteError(w, apperr.Upstream("event store delete", err))
		return
	}

	if e.cache != nil {
		e.cache.DelEvent(r.Context(), id)
	}
	w.WriteHeader(http.StatusNoContent)
}
