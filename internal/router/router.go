package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"admin-console/internal/config"
	"admin-console/internal/handler"
	"admin-console/internal/middleware"
	"admin-console/internal/render"
	"admin-console/internal/session"
	"admin-console/internal/websocket"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Pages  *handler.PageHandler
	Action *handler.ActionHandler
	Forms  *handler.FormHandler
	Health *handler.HealthHandler
}

func New(cfg *config.Config, sessions *session.Store, h Handlers, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.LoginRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.SameOrigin(cfg.ConsolePublicURL))
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.RequireSession(sessions))

	r.Get("/health", h.Health.Health)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(render.Static())))

	r.Get("/login", h.Auth.LoginForm)
	r.Post("/login", h.Auth.Login)
	r.Post("/logout", h.Auth.Logout)
	r.Post("/settings/api-base", h.Auth.SetAPIBase)

	r.Get("/", h.Pages.Home)
	r.Get("/pages/{page}", h.Pages.Show)

	r.Get("/actions/{entity}/{id}/{verb}", h.Action.Ask)
	r.Post("/actions/{entity}/{id}/{verb}", h.Action.Perform)
	r.Post("/forms/{form}", h.Forms.Submit)

	r.Get("/ws", hub.ServeWS)

	return r
}
