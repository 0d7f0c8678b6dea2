// Package view is the console's navigation state machine. Exactly one
// page is active at a time; each list page keeps its own query state.
package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"admin-console/internal/backend"
	"admin-console/internal/debounce"
	"admin-console/internal/model"
	"admin-console/internal/render"
	"admin-console/internal/session"
	"admin-console/pkg/apierror"
)

// errSessionLost aborts a load when the backend no longer accepts the
// session; the caller is sent to the login view.
var errSessionLost = errors.New("session lost")

// Screen is one rendered view.
type Screen struct {
	Page    Page
	Title   string
	Body    template.HTML
	Profile model.Admin
	Nav     []render.NavItem
}

// RenderFunc receives fragments produced outside a request, such as
// debounced searches.
type RenderFunc func(page Page, body template.HTML)

type Options struct {
	PageSize       int
	SearchDebounce time.Duration
}

type Controller struct {
	facade   *backend.Facade
	sessions *session.Store
	renderer *render.Renderer
	searches *debounce.Debouncer
	pageSize int

	mu         sync.Mutex
	active     Route
	generation uint64
	queries    map[Page]*ListQuery
	onRender   RenderFunc
}

func NewController(facade *backend.Facade, sessions *session.Store, renderer *render.Renderer, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = 50
	}
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = 300 * time.Millisecond
	}

	return &Controller{
		facade:   facade,
		sessions: sessions,
		renderer: renderer,
		searches: debounce.New(opts.SearchDebounce),
		pageSize: opts.PageSize,
		queries:  map[Page]*ListQuery{},
	}
}

func (c *Controller) OnRender(fn RenderFunc) {
	c.mu.Lock()
	c.onRender = fn
	c.mu.Unlock()
}

// Close drops pending debounced searches.
func (c *Controller) Close() {
	c.searches.Stop()
}

func (c *Controller) Active() Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Start picks the landing route. Without a valid session nothing is
// fetched and the admin goes to login.
func (c *Controller) Start(ctx context.Context) Route {
	if !c.sessions.Valid(ctx) {
		return Route{Page: PageLogin}
	}

	c.RefreshProfile(ctx)
	return Route{Page: PageDashboard}
}

// RefreshProfile fetches the current admin and caches it, falling back to
// the cached profile when the fetch fails.
func (c *Controller) RefreshProfile(ctx context.Context) model.Admin {
	admin, err := c.facade.CurrentAdmin(ctx)
	if err == nil && admin.Known() {
		if err := c.sessions.SaveProfile(ctx, admin); err != nil {
			slog.Warn("failed to cache admin profile", "error", err)
		}
		return admin
	}

	if err != nil {
		slog.Warn("current admin fetch failed; using cached profile", "error", apierror.Message(err))
	}

	cached, _ := c.sessions.Profile(ctx)
	return cached
}

func (c *Controller) Navigate(ctx context.Context, route Route) (Screen, error) {
	return c.Open(ctx, route, nil)
}

// Open makes route the active view, applies any search, filter or page
// values from input to its list query, and loads it. Entering a list from
// another section resets its query; returning from its own detail view
// keeps it.
func (c *Controller) Open(ctx context.Context, route Route, input url.Values) (Screen, error) {
	def, ok := pages[route.Page]
	if !ok {
		return Screen{}, fmt.Errorf("%w: %s", model.ErrUnknownPage, route.Page)
	}
	if route.Page.IsDetail() && route.ID == 0 {
		return Screen{}, model.ErrMissingID
	}

	if !c.sessions.Valid(ctx) {
		return Screen{Page: PageLogin}, nil
	}

	c.mu.Lock()
	previous := c.active.Page
	if route.Page.isList() {
		if previous != route.Page && previous.List() != route.Page {
			c.queries[route.Page] = newListQuery(c.pageSize)
		}
		c.applyInput(route.Page, def, input)
	}
	c.active = route
	c.generation++
	c.mu.Unlock()

	body, err := c.load(ctx, route)
	if errors.Is(err, errSessionLost) {
		return Screen{Page: PageLogin}, nil
	}
	if err != nil {
		return Screen{}, err
	}

	return c.screen(ctx, route, def, body), nil
}

// SetSearch records a keystroke. Bursts inside the quiet period collapse
// into one fetch with the last value; the result reaches OnRender only if
// the page is still active and no newer render started meanwhile.
func (c *Controller) SetSearch(page Page, text string) {
	if !pages[page].search {
		return
	}

	c.searches.Trigger(string(page), func() {
		c.runSearch(page, text)
	})
}

func (c *Controller) runSearch(page Page, text string) {
	ctx := context.Background()

	c.mu.Lock()
	if c.active.Page != page {
		c.mu.Unlock()
		return
	}
	q := c.query(page)
	q.Search = text
	q.Page = 1
	c.generation++
	generation := c.generation
	route := c.active
	c.mu.Unlock()

	body, err := c.load(ctx, route)
	if err != nil {
		if !errors.Is(err, errSessionLost) {
			slog.Error("search render failed", "page", page, "error", err)
		}
		return
	}

	c.mu.Lock()
	stale := c.generation != generation || c.active.Page != page
	sink := c.onRender
	c.mu.Unlock()

	if stale {
		slog.Debug("dropping stale search render", "page", page)
		return
	}
	if sink != nil {
		sink(page, body)
	}
}

func (c *Controller) SetFilter(ctx context.Context, page Page, key string, value string) (Screen, error) {
	return c.Open(ctx, Route{Page: page}, url.Values{key: {value}})
}

func (c *Controller) SetPageIndex(ctx context.Context, page Page, index int) (Screen, error) {
	return c.Open(ctx, Route{Page: page}, url.Values{"page": {strconv.Itoa(index)}})
}

// Query returns a copy of the list state of page.
func (c *Controller) Query(page Page) ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query(page).clone()
}

func (c *Controller) query(page Page) *ListQuery {
	q, ok := c.queries[page]
	if !ok {
		q = newListQuery(c.pageSize)
		c.queries[page] = q
	}
	return q
}

func (c *Controller) applyInput(page Page, def pageDef, input url.Values) {
	q := c.query(page)
	if input == nil {
		return
	}

	changed := false
	if def.search && input.Has("search") {
		q.Search = strings.TrimSpace(input.Get("search"))
		changed = true
	}
	for _, key := range def.filters {
		if input.Has(key) {
			q.Filters[key] = strings.TrimSpace(input.Get(key))
			changed = true
		}
	}
	if changed {
		q.Page = 1
	}
	if raw := input.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Page = n
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
}

// Frame wraps body in the chrome of route without loading anything, for
// fragments such as dialogs that are not views of their own.
func (c *Controller) Frame(ctx context.Context, route Route, title string, body template.HTML) Screen {
	screen := c.screen(ctx, route, pages[route.Page], body)
	if title != "" {
		screen.Title = title
	}
	return screen
}

func (c *Controller) screen(ctx context.Context, route Route, def pageDef, body template.HTML) Screen {
	profile, _ := c.sessions.Profile(ctx)

	nav := make([]render.NavItem, 0, len(navOrder))
	for _, page := range navOrder {
		item := pages[page]
		if item.super && !profile.IsSuperAdmin() {
			continue
		}
		nav = append(nav, render.NavItem{Page: string(page), Label: item.nav, Active: route.Page.List() == page})
	}

	return Screen{Page: route.Page, Title: def.title, Body: body, Profile: profile, Nav: nav}
}
