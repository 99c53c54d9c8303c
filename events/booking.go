package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"stagepass/apperr"
	"stagepass/dstore"
	"stagepass/models"
	"stagepass/utils"
	"stagepass/validation"

	"github.com/julienschmidt/httprouter"
)

// Concurrent bookings race on the same record; each conflict costs one refetch.
const mutateRetries = 3

// BookEvent appends one attendee to an existing event. Booking never creates an
// event, and a booking that loses the version race retries against the fresh
// record instead of overwriting it.
func (e *Engine) BookEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("eventId")

	var attendee models.Attendee
	if err := json.NewDecoder(r.Body).Decode(&attendee); err != nil {
		utils.WriteError(w, apperr.MalformedInput(err))
		return
	}
	if violations := validation.Check(attendee); violations != nil {
		utils.WriteError(w, apperr.Validation(violations))
		return
	}

	event, err := e.mutate(r.Context(), id, func(ev *models.Event) {
		ev.Attendees = append(ev.Attendees, attendee)
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

// mutate runs a fetch-apply-write cycle guarded by the record's version counter.
// The conditional put only succeeds while the stored version matches the one
// read, so a concurrent writer forces a refetch rather than a lost update.
func (e *Engine) mutate(ctx context.Context, id string, apply func(*models.Event)) (*models.Event, error) {
	for attempt := 1; attempt <= mutateRetries; attempt++ {
		var event models.Event
		err := e.store.Get(ctx, dstore.Events, id, &event)
		if errors.Is(err, dstore.ErrNotFound) {
			return nil, apperr.NotFound()
		}
		if err != nil {
			return nil, apperr.Upstream("event store get", err)
		}

		read := event.Version
		apply(&event)
		event.Version = read + 1

		err = e.store.PutIf(ctx, dstore.Events, id, event, read)
		if errors.Is(err, dstore.ErrConflict) {
			slog.Warn("event version conflict, retrying", "eventid", id, "attempt", attempt)
			continue
		}
		if errors.Is(err, dstore.ErrNotFound) {
			return nil, apperr.NotFound()
		}
		if err != nil {
			return nil, apperr.Upstream("event store put", err)
		}
		return &event, nil
	}
	return nil, apperr.Conflict()
}
