//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"admin-console/internal/action"
	"admin-console/internal/apiclient"
	"admin-console/internal/backend"
	"admin-console/internal/config"
	"admin-console/internal/event"
	"admin-console/internal/handler"
	"admin-console/internal/kv"
	"admin-console/internal/model"
	"admin-console/internal/render"
	"admin-console/internal/router"
	"admin-console/internal/session"
	"admin-console/internal/view"
	"admin-console/internal/websocket"
)

const (
	adminEmail    = "ada@ardena.xyz"
	adminPassword = "correct-horse"
	accessToken   = "tok-integration"
)

// marketplace is an in-memory stand-in for the rental backend's admin API.
type marketplace struct {
	mu       sync.Mutex
	expired  bool
	hosts    []model.Host
	deleted  []int64
	searches []string
}

func newMarketplace() *marketplace {
	return &marketplace{hosts: []model.Host{
		{ID: 7, FullName: "Jane Doe", Email: "jane@x.com", IsActive: true},
		{ID: 8, FullName: "John Roe", Email: "john@x.com"},
	}}
}

func (m *marketplace) expire() {
	m.mu.Lock()
	m.expired = true
	m.mu.Unlock()
}

func (m *marketplace) deletedIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.deleted)
}

func (m *marketplace) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/admin/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email != adminEmail || req.Password != adminPassword {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, http.StatusOK, model.LoginResponse{AccessToken: accessToken, Admin: m.admin()})
	})

	mux.HandleFunc("POST /api/v1/admin/auth/logout", m.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Logged out"})
	}))

	mux.HandleFunc("GET /api/v1/admin/me", m.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, m.admin())
	}))

	mux.HandleFunc("GET /api/v1/admin/dashboard/stats", m.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, model.DashboardStats{TotalHosts: 2, ActiveHosts: 1, InactiveHosts: 1})
	}))

	mux.HandleFunc("GET /api/v1/admin/dashboard/activity", m.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, model.ActivityFeed{})
	}))

	mux.HandleFunc("GET /api/v1/admin/hosts", m.authed(func(w http.ResponseWriter, r *http.Request) {
		search := strings.ToLower(r.URL.Query().Get("search"))

		m.mu.Lock()
		m.searches = append(m.searches, search)
		var hosts []model.Host
		for _, host := range m.hosts {
			if search == "" || strings.Contains(strings.ToLower(host.FullName), search) {
				hosts = append(hosts, host)
			}
		}
		m.mu.Unlock()

		writeJSON(w, http.StatusOK, model.HostPage{Hosts: hosts, PageMeta: model.PageMeta{Total: len(hosts), Limit: 50}})
	}))

	mux.HandleFunc("DELETE /api/v1/admin/hosts/{id}", m.authed(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Host not found"})
			return
		}

		m.mu.Lock()
		m.deleted = append(m.deleted, id)
		m.hosts = slices.DeleteFunc(m.hosts, func(h model.Host) bool { return h.ID == id })
		m.mu.Unlock()

		writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Host deleted"})
	}))

	return mux
}

func (m *marketplace) admin() model.Admin {
	return model.Admin{ID: 1, FullName: "Ada Admin", Email: adminEmail, Role: model.RoleSuperAdmin, IsActive: true}
}

// authed rejects requests without the issued token, and every request
// once the marketplace has expired the session.
func (m *marketplace) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		expired := m.expired
		m.mu.Unlock()

		if expired || r.Header.Get("Authorization") != "Bearer "+accessToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type consoleServer struct {
	*httptest.Server
	backend  *marketplace
	sessions *session.Store
	client   *http.Client
}

// newConsoleServer wires the console the way the app does, against a
// fresh marketplace and an in-memory session store.
func newConsoleServer(t *testing.T) *consoleServer {
	t.Helper()

	market := newMarketplace()
	backendServer := httptest.NewServer(market.routes())
	t.Cleanup(backendServer.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sessions := session.NewStore(kv.NewMemoryStore())
	bus := event.NewBus()
	notifier := event.NewNotifier(bus)

	client := apiclient.New(apiclient.ResolveBaseURL(backendServer.URL, "", "", ""), sessions, backendServer.Client())
	client.OnUnauthorized(func(context.Context) { notifier.SessionCleared() })

	renderer, err := render.New("")
	require.NoError(t, err)

	facade := backend.New(client)
	ctrl := view.NewController(facade, sessions, renderer, view.Options{PageSize: 50, SearchDebounce: 20 * time.Millisecond})
	ctrl.OnRender(func(page view.Page, body template.HTML) { notifier.Rendered(string(page), body) })
	t.Cleanup(ctrl.Close)

	hub := websocket.NewHub(bus, func(page string, text string) {
		if p, ok := view.ParsePage(page); ok {
			ctrl.SetSearch(p, text)
		}
	})
	go hub.Run(ctx)

	exec := action.NewExecutor(facade)
	cfg := &config.Config{CORSOrigins: []string{"*"}, LoginRateLimitRPM: 1000}

	server := httptest.NewServer(router.New(cfg, sessions, router.Handlers{
		Auth:   handler.NewAuthHandler(client, facade, sessions, renderer, notifier),
		Pages:  handler.NewPageHandler(ctrl, renderer, notifier),
		Action: handler.NewActionHandler(exec, ctrl, renderer, notifier),
		Forms:  handler.NewFormHandler(exec, ctrl, renderer, notifier),
		Health: handler.NewHealthHandler(client),
	}, hub))
	t.Cleanup(server.Close)

	return &consoleServer{
		Server:   server,
		backend:  market,
		sessions: sessions,
		client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
	}
}

type page struct {
	status   int
	location string
	body     string
}

func (s *consoleServer) get(t *testing.T, path string) page {
	t.Helper()

	resp, err := s.client.Get(s.URL + path)
	require.NoError(t, err)
	return readPage(t, resp)
}

func (s *consoleServer) post(t *testing.T, path string, form url.Values) page {
	t.Helper()

	resp, err := s.client.PostForm(s.URL+path, form)
	require.NoError(t, err)
	return readPage(t, resp)
}

func (s *consoleServer) login(t *testing.T) {
	t.Helper()

	got := s.post(t, "/login", url.Values{"email": {adminEmail}, "password": {adminPassword}})
	require.Equal(t, http.StatusSeeOther, got.status)
	require.Equal(t, "/", got.location)
}

func readPage(t *testing.T, resp *http.Response) page {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return page{status: resp.StatusCode, location: resp.Header.Get("Location"), body: string(body)}
}
