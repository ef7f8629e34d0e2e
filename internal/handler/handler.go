package handler

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gorilla/websocket"
	"github.com/harborview-interiors/schedule-planner/internal/backend"
	"github.com/harborview-interiors/schedule-planner/internal/config"
	"github.com/harborview-interiors/schedule-planner/internal/domain"
	"github.com/harborview-interiors/schedule-planner/internal/planner"
	"github.com/harborview-interiors/schedule-planner/internal/taxonomy"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	translator ut.Translator
	backend    *backend.Client
	planner    *planner.Planner
	dragger    *planner.Dragger
	lists      *taxonomy.Lists

	upgrader websocket.Upgrader

	snapshotMu    sync.RWMutex
	notifications []domain.Notification
	metrics       *domain.DashboardMetrics

	streamMu sync.Mutex
	streams  map[*streamClient]struct{}

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, client *backend.Client, p *planner.Planner, lists *taxonomy.Lists) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		translator: trans,
		backend:    client,
		planner:    p,
		dragger:    planner.NewDragger(p),
		lists:      lists,
		streams:    make(map[*streamClient]struct{}),
		upgrader: websocket.Upgrader{
			// the dashboard is served from another origin in development
			CheckOrigin: func(r *http.Request) bool { return true },
		},

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// the whole surface requires a bearer credential
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/schedule", func(r chi.Router) {
			r.Post("/refresh", h.RefreshSchedule)
			r.Get("/grid", h.GetGrid)
			r.Get("/team", h.GetTeam)
			r.Get("/declined", h.GetDeclined)
			r.Get("/days/{date}", h.GetDay)

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/", h.GetAssignments)
				r.Post("/", h.CreateAssignment)
				r.Route("/{id}", func(r chi.Router) {
					r.Patch("/", h.UpdateAssignment)
					r.Delete("/", h.DeleteAssignment)
					r.Post("/move", h.MoveAssignment)
				})
			})

			r.Route("/drag", func(r chi.Router) {
				r.Post("/start", h.DragStart)
				r.Post("/drop", h.DragDrop)
				r.Post("/cancel", h.DragCancel)
			})
		})

		r.Route("/taxonomy", func(r chi.Router) {
			r.Get("/assignees", h.GetCustomAssignees)
			r.Post("/assignees", h.AddCustomAssignee)
			r.Get("/tasks", h.GetCustomTasks)
			r.Post("/tasks", h.AddCustomTask)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.GetNotifications)
			r.Get("/stream", h.StreamNotifications)
			r.Patch("/mark-all-read", h.MarkAllNotificationsRead)
			r.Delete("/clear-all", h.ClearNotifications)
			r.Patch("/{id}/read", h.MarkNotificationRead)
			r.Delete("/{id}", h.DeleteNotification)
		})

		r.Get("/dashboard/metrics", h.GetDashboardMetrics)
	})
}
