package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lanyicong/moodlink/backend/internal/handler/feed"
	moodHandler "github.com/lanyicong/moodlink/backend/internal/handler/mood"
	middlewarePkg "github.com/lanyicong/moodlink/backend/internal/middleware"
	roomService "github.com/lanyicong/moodlink/backend/internal/service/room"
	"github.com/lanyicong/moodlink/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the shared room store.
func NewRouter(rooms *roomService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		})

		moodHandler.New(rooms).RegisterRoutes(api)
		feed.New(rooms).RegisterRoutes(api)
	})

	return r
}
