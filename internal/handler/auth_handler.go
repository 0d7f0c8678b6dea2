package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"admin-console/internal/event"
	"admin-console/internal/model"
	"admin-console/internal/render"
	"admin-console/internal/session"
	"admin-console/pkg/apierror"
)

const loginFallbackError = "An error occurred. Please try again."

type authenticator interface {
	Login(ctx context.Context, email string, password string) (model.LoginResponse, error)
	BaseURL() string
}

type logouter interface {
	Logout(ctx context.Context) error
}

type AuthHandler struct {
	screens
	auth     authenticator
	backend  logouter
	sessions *session.Store
}

func NewAuthHandler(auth authenticator, backend logouter, sessions *session.Store, renderer *render.Renderer, notifier *event.Notifier) *AuthHandler {
	return &AuthHandler{
		screens:  screens{renderer: renderer, notifier: notifier},
		auth:     auth,
		backend:  backend,
		sessions: sessions,
	}
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.Valid(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.login(w, http.StatusOK, render.Login{APIBaseURL: h.auth.BaseURL()})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, apierror.MalformedInput("invalid form body", ""))
		return
	}

	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")

	resp, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		message := apierror.Message(err)
		if message == "" {
			message = loginFallbackError
		}
		slog.Warn("admin login failed", "email", email, "error", message)
		h.login(w, http.StatusUnauthorized, render.Login{Email: email, Error: message, APIBaseURL: h.auth.BaseURL()})
		return
	}

	if err := h.sessions.Save(r.Context(), resp.AccessToken, resp.Admin); err != nil {
		slog.Error("failed to store session", "error", err)
		h.login(w, http.StatusInternalServerError, render.Login{Email: email, Error: loginFallbackError, APIBaseURL: h.auth.BaseURL()})
		return
	}

	slog.Info("admin signed in", "admin_id", resp.Admin.ID, "role", resp.Admin.Role)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout tells the backend first but clears the local session whatever it
// answers.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Logout(r.Context()); err != nil {
		slog.Warn("backend logout failed", "error", apierror.Message(err))
	}

	if err := h.sessions.Clear(r.Context()); err != nil {
		slog.Error("failed to clear session", "error", err)
	}

	h.notifier.SessionCleared()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SetAPIBase stores or clears the backend address override. The gateway
// resolves its base once, so the new value applies after a restart.
func (h *AuthHandler) SetAPIBase(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, apierror.MalformedInput("invalid form body", ""))
		return
	}

	raw := strings.TrimSpace(r.PostForm.Get("api_base_url"))
	data := render.Login{APIBaseURL: h.auth.BaseURL()}

	if raw != "" {
		parsed, err := url.Parse(raw)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			data.Error = "Please enter a valid http(s) URL."
			h.login(w, http.StatusUnprocessableEntity, data)
			return
		}
	}

	if err := h.sessions.SetAPIBaseOverride(r.Context(), raw); err != nil {
		slog.Error("failed to store api base override", "error", err)
		data.Error = loginFallbackError
		h.login(w, http.StatusInternalServerError, data)
		return
	}

	if raw == "" {
		data.Notice = "Backend override cleared. Restart the console to apply."
	} else {
		data.Notice = "Backend set to " + raw + ". Restart the console to apply."
	}
	slog.Info("api base override updated", "override", raw)
	h.login(w, http.StatusOK, data)
}
