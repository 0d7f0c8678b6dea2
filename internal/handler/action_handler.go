package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"admin-console/internal/action"
	"admin-console/internal/event"
	"admin-console/internal/model"
	"admin-console/internal/render"
	"admin-console/internal/view"
	"admin-console/pkg/apierror"
)

type ActionHandler struct {
	screens
	exec *action.Executor
	ctrl *view.Controller
}

func NewActionHandler(exec *action.Executor, ctrl *view.Controller, renderer *render.Renderer, notifier *event.Notifier) *ActionHandler {
	return &ActionHandler{screens: screens{renderer: renderer, notifier: notifier}, exec: exec, ctrl: ctrl}
}

// Ask shows the confirmation or prompt of an action. It never runs the
// action; only a POST does.
func (h *ActionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	req, ok := h.request(w, r)
	if !ok {
		return
	}
	if !h.exec.Asks(req.Entity, req.Verb) {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "This action runs on submit", http.StatusMethodNotAllowed)
		return
	}

	req.Values = r.URL.Query()
	req.Values.Del("confirm")
	req.Values.Del(h.exec.PromptField(req.Entity, req.Verb))
	dialog := action.NewFormDialog(req.Values, h.exec.PromptField(req.Entity, req.Verb))

	_, err := h.exec.Run(r.Context(), req, dialog)
	question, pending := dialog.Pending()
	if !pending {
		h.settle(w, r, req, action.Outcome{}, err)
		return
	}

	h.dialog(w, r, req, http.StatusOK, question)
}

// Perform runs an action with the answers posted from its dialog.
func (h *ActionHandler) Perform(w http.ResponseWriter, r *http.Request) {
	req, ok := h.request(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, apierror.MalformedInput("invalid form body", ""))
		return
	}

	req.Values = r.Form
	dialog := action.NewFormDialog(req.Values, h.exec.PromptField(req.Entity, req.Verb))

	outcome, err := h.exec.Run(r.Context(), req, dialog)
	switch {
	case errors.Is(err, model.ErrDialogPending):
		question, _ := dialog.Pending()
		h.dialog(w, r, req, http.StatusOK, question)
	case action.IsInputError(err):
		question := dialog.Question()
		question.Error = apierror.Message(err)
		h.dialog(w, r, req, http.StatusUnprocessableEntity, question)
	default:
		h.settle(w, r, req, outcome, err)
	}
}

func (h *ActionHandler) request(w http.ResponseWriter, r *http.Request) (action.Request, bool) {
	req := action.Request{
		Entity:     chi.URLParam(r, "entity"),
		Verb:       chi.URLParam(r, "verb"),
		FromDetail: r.URL.Query().Get("from") == "detail",
	}
	if !h.exec.Known(req.Entity, req.Verb) {
		writeError(w, model.ErrUnknownAction)
		return req, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, model.ErrMissingID)
		return req, false
	}
	req.ID = id

	return req, true
}

// settle finishes an action that ran, was declined or lost the session.
func (h *ActionHandler) settle(w http.ResponseWriter, r *http.Request, req action.Request, outcome action.Outcome, err error) {
	switch {
	case err == nil:
		h.notifier.Toast(outcome.Toast, outcome.Failed)
		http.Redirect(w, r, outcome.Next.Path(), http.StatusSeeOther)
	case errors.Is(err, model.ErrActionCancelled):
		http.Redirect(w, r, h.exec.Origin(req.Entity, req.ID, req.FromDetail).Path(), http.StatusSeeOther)
	case action.IsSessionError(err):
		slog.Info("session rejected during action", "entity", req.Entity, "verb", req.Verb)
		h.toLogin(w, r)
	default:
		writeError(w, err)
	}
}

func (h *ActionHandler) dialog(w http.ResponseWriter, r *http.Request, req action.Request, status int, question render.Dialog) {
	origin := h.exec.Origin(req.Entity, req.ID, req.FromDetail)
	question.Action = r.URL.Path
	if raw := r.URL.RawQuery; raw != "" {
		question.Action += "?" + raw
	}
	question.Cancel = origin.Path()

	body, err := h.renderer.Render("dialog", question)
	if err != nil {
		writeError(w, err)
		return
	}

	h.write(w, status, h.ctrl.Frame(r.Context(), origin, "Confirm", body))
}
