package routes

import (
	"net/http"

	"stagepass/auth"
	"stagepass/events"
	"stagepass/middleware"
	"stagepass/ratelim"
	"stagepass/users"

	"github.com/julienschmidt/httprouter"
)

func AddEventsRoutes(router *httprouter.Router, e *events.Engine, v *middleware.Verifier, rl *ratelim.RateLimiter) {
	router.GET("/events", e.GetEvents)
	router.GET("/events/:eventId", e.GetEvent)
	router.POST("/events/:eventId", postEventDispatch(rl.Limit(v.Authenticate(e.CreateEvent))))
	router.POST("/events/:eventId/book", rl.Limit(v.Authenticate(e.BookEvent)))
	router.PUT("/events/:eventId", rl.Limit(v.Authenticate(e.UpdateEvent)))
	router.DELETE("/events/:eventId", rl.Limit(v.Authenticate(e.DeleteEvent)))
}

// postEventDispatch keeps the wire path POST /events/create. httprouter refuses
// a static "create" segment next to the ":eventId" wildcard in the POST tree,
// so creation dispatches through the wildcard instead.
func postEventDispatch(create httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("eventId") == "create" {
			create(w, r, ps)
			return
		}
		http.NotFound(w, r)
	}
}

func AddUserRoutes(router *httprouter.Router, e *users.Engine, v *middleware.Verifier, rl *ratelim.RateLimiter) {
	router.GET("/users", e.GetUsers)
	router.GET("/users/:userId", e.GetUser)
	router.POST("/users/create", rl.Limit(v.Authenticate(e.CreateUser)))
	router.PUT("/users/:userId", rl.Limit(v.Authenticate(e.UpdateUser)))
	router.DELETE("/users/:userId", rl.Limit(v.Authenticate(e.DeleteUser)))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/auth/signup", rl.Limit(h.Signup))
	router.POST("/auth/signin", rl.Limit(h.Signin))
	router.POST("/auth/verify", rl.Limit(h.Verify))
	router.POST("/auth/forgot-password", rl.Limit(h.ForgotPassword))
	router.POST("/auth/confirm-password", rl.Limit(h.ConfirmPassword))
}
