package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"admin-console/internal/action"
	"admin-console/internal/event"
	"admin-console/internal/render"
	"admin-console/internal/view"
	"admin-console/pkg/apierror"
)

type FormHandler struct {
	screens
	exec *action.Executor
	ctrl *view.Controller
}

func NewFormHandler(exec *action.Executor, ctrl *view.Controller, renderer *render.Renderer, notifier *event.Notifier) *FormHandler {
	return &FormHandler{screens: screens{renderer: renderer, notifier: notifier}, exec: exec, ctrl: ctrl}
}

// Submit handles the console's own forms. Validation problems re-render
// the form's view with the message inline; everything else settles as a
// toast and a redirect.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, apierror.MalformedInput("invalid form body", ""))
		return
	}

	form := chi.URLParam(r, "form")
	outcome, err := h.exec.Submit(r.Context(), form, r.PostForm)
	if err != nil {
		if action.IsSessionError(err) {
			slog.Info("session rejected during form submission", "form", form)
			h.toLogin(w, r)
			return
		}
		writeError(w, err)
		return
	}

	if outcome.Next.FormError != "" {
		screen, err := h.ctrl.Navigate(r.Context(), outcome.Next)
		if err != nil {
			writeError(w, err)
			return
		}
		if screen.Page == view.PageLogin {
			h.toLogin(w, r)
			return
		}
		h.write(w, http.StatusUnprocessableEntity, screen)
		return
	}

	h.notifier.Toast(outcome.Toast, outcome.Failed)
	http.Redirect(w, r, outcome.Next.Path(), http.StatusSeeOther)
}
