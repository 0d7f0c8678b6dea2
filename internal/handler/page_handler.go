package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"admin-console/internal/event"
	"admin-console/internal/model"
	"admin-console/internal/render"
	"admin-console/internal/view"
	"admin-console/pkg/apierror"
)

type PageHandler struct {
	screens
	ctrl *view.Controller
}

func NewPageHandler(ctrl *view.Controller, renderer *render.Renderer, notifier *event.Notifier) *PageHandler {
	return &PageHandler{screens: screens{renderer: renderer, notifier: notifier}, ctrl: ctrl}
}

// Home sends the admin to the landing view: the dashboard with a live
// session, login otherwise.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	route := h.ctrl.Start(r.Context())
	http.Redirect(w, r, route.Path(), http.StatusSeeOther)
}

// Show opens a view. Query values other than id and form are list input:
// search, filters and the page index.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	page, ok := view.ParsePage(chi.URLParam(r, "page"))
	if !ok {
		writeError(w, model.ErrUnknownPage)
		return
	}

	query := r.URL.Query()
	route := view.Route{Page: page, Form: query.Get("form")}
	if raw := query.Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, apierror.MalformedInput("id must be a positive integer", "id"))
			return
		}
		route.ID = id
	}

	screen, err := h.ctrl.Open(r.Context(), route, query)
	if err != nil {
		writeError(w, err)
		return
	}
	if screen.Page == view.PageLogin {
		h.toLogin(w, r)
		return
	}

	h.write(w, http.StatusOK, screen)
}
