package handler

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"admin-console/internal/event"
	"admin-console/internal/model"
	"admin-console/internal/render"
	"admin-console/internal/view"
	"admin-console/pkg/apierror"
)

// screens writes full console documents. Toasts queued since the last
// document are drained into the one being written.
type screens struct {
	renderer *render.Renderer
	notifier *event.Notifier
}

func (s screens) write(w http.ResponseWriter, status int, screen view.Screen) {
	doc, err := s.renderer.Render("layout", render.Layout{
		Title:   screen.Title,
		Page:    string(screen.Page),
		Body:    screen.Body,
		Profile: screen.Profile,
		Nav:     screen.Nav,
		Toasts:  s.notifier.Drain(),
	})
	if err != nil {
		slog.Error("layout render failed", "page", screen.Page, "error", err)
		http.Error(w, "Unexpected server error", http.StatusInternalServerError)
		return
	}

	writeHTML(w, status, doc)
}

func (s screens) login(w http.ResponseWriter, status int, data render.Login) {
	doc, err := s.renderer.Render("login", data)
	if err != nil {
		slog.Error("login render failed", "error", err)
		http.Error(w, "Unexpected server error", http.StatusInternalServerError)
		return
	}

	writeHTML(w, status, doc)
}

// toLogin ends the browser's stay on the console after the session was
// lost. The gateway's unauthorized hook has already announced a backend
// 401 on the live channel, so this only redirects.
func (s screens) toLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func writeHTML(w http.ResponseWriter, status int, doc template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(doc))
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError maps console errors onto a status and a short plain-text
// body. Errors with admin-facing text never reach here; they become
// toasts or inline messages.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Unexpected server error"

	var apiErr *apierror.APIError
	switch {
	case errors.Is(err, model.ErrUnknownPage):
		status = http.StatusNotFound
		message = "Page not found"
	case errors.Is(err, model.ErrUnknownAction):
		status = http.StatusNotFound
		message = "Action not found"
	case errors.Is(err, model.ErrMissingID):
		status = http.StatusBadRequest
		message = "A record id is required"
	case errors.As(err, &apiErr):
		status = http.StatusBadGateway
		if apiErr.HTTPStatus >= 400 {
			status = apiErr.HTTPStatus
		}
		message = apiErr.Message
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	http.Error(w, message, status)
}
