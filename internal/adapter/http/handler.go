package http

import (
	"context"

	"resume-builder/internal/auth"
	"resume-builder/internal/domain"
	"resume-builder/internal/session"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventLister reads back a user's analytics history.
type EventLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.AnalyticsEvent, error)
}

type Deps struct {
	Auth     *auth.Service
	Resumes  *usecase.ResumeService
	Exports  *usecase.ExportService
	Sessions *session.Manager
	AI       *ai.Generator
	Events   EventLister
	Tracker  usecase.Tracker
	Log      zerolog.Logger
}

type Handler struct {
	auth     *auth.Service
	resumes  *usecase.ResumeService
	exports  *usecase.ExportService
	sessions *session.Manager
	ai       *ai.Generator
	events   EventLister
	tracker  usecase.Tracker
	log      zerolog.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		auth:     d.Auth,
		resumes:  d.Resumes,
		exports:  d.Exports,
		sessions: d.Sessions,
		ai:       d.AI,
		events:   d.Events,
		tracker:  d.Tracker,
		log:      d.Log,
	}
}

// Register mounts every route on app.
func (h *Handler) Register(app *fiber.App) {
	app.Use(h.identify)

	app.Get("/healthz", h.Health)

	app.Get("/templates", h.ListTemplates)
	app.Get("/templates/categories", h.ListCategories)
	app.Get("/templates/:id", h.GetTemplate)

	a := app.Group("/auth")
	a.Post("/signup", h.SignUp)
	a.Post("/signin", h.SignIn)
	a.Post("/signout", h.requireUser, h.SignOut)
	a.Get("/me", h.requireUser, h.Me)
	a.Get("/me/events", h.requireUser, h.MyEvents)

	r := app.Group("/resumes", h.requireUser)
	r.Post("/", h.CreateResume)
	r.Get("/", h.ListResumes)
	r.Get("/:id", h.GetResume)
	r.Patch("/:id", h.UpdateResume)
	r.Delete("/:id", h.DeleteResume)
	r.Post("/:id/duplicate", h.DuplicateResume)
	r.Post("/:id/share", h.ShareResume)

	app.Get("/public/resumes", h.SearchPublic)
	app.Get("/public/resumes/:id", h.GetPublic)

	app.Post("/preview", h.Preview)
	app.Post("/export/pdf", h.ExportPDF)
	app.Post("/export/print", h.ExportPrint)

	app.Post("/ai/summary", h.AISummary)
	app.Post("/ai/experience", h.AIExperience)
	app.Post("/review", h.Review)
	app.Post("/extract", h.Extract)

	s := app.Group("/sessions")
	s.Post("/", h.CreateSession)
	s.Get("/:id", h.GetSession)
	s.Put("/:id/data", h.PutSessionData)
	s.Put("/:id/template", h.PutSessionTemplate)
	s.Post("/:id/entries/:kind", h.AddSessionEntry)
	s.Delete("/:id/entries/:eid", h.RemoveSessionEntry)
	s.Post("/:id/attachments", h.UploadAttachment)
	s.Get("/:id/attachments/:aid", h.DownloadAttachment)
	s.Delete("/:id/attachments/:aid", h.DeleteAttachment)
	s.Post("/:id/export", h.ExportSession)
	s.Delete("/:id", h.DeleteSession)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	out := fiber.Map{"status": "ok", "sessions": h.sessions.Len()}
	if h.ai != nil {
		out["ai_breaker"] = h.ai.BreakerState()
	}
	return c.JSON(out)
}

func (h *Handler) track(ctx context.Context, eventType string, data map[string]any) {
	if h.tracker == nil {
		return
	}
	if err := h.tracker.Track(ctx, eventType, data); err != nil {
		h.log.Warn().Err(err).Str("event_type", eventType).Msg("analytics event dropped")
	}
}
