package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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
	"admin-console/internal/session"
	"admin-console/internal/view"
	"admin-console/internal/websocket"
)

type console struct {
	http.Handler
	sessions *session.Store
	events   <-chan event.Event
}

// newConsole wires the full middleware chain the way the app does.
// Facade calls go to api, or to client when api is nil.
func newConsole(t *testing.T, client *apiclient.Client, sessions *session.Store, bus *event.InMemoryBus, api backend.Requester) console {
	t.Helper()

	require.NoError(t, sessions.Save(context.Background(), "tok", model.Admin{ID: 1, FullName: "Ada Admin", Email: "ada@x.com", Role: "admin"}))

	renderer, err := render.New("")
	require.NoError(t, err)

	notifier := event.NewNotifier(bus)
	client.OnUnauthorized(func(context.Context) { notifier.SessionCleared() })

	if api == nil {
		api = client
	}
	facade := backend.New(api)
	ctrl := view.NewController(facade, sessions, renderer, view.Options{PageSize: 50})
	t.Cleanup(ctrl.Close)
	exec := action.NewExecutor(facade)

	events, unsubscribe := bus.Subscribe()
	t.Cleanup(unsubscribe)

	cfg := &config.Config{ConsolePublicURL: "http://localhost:8090", CORSOrigins: []string{"*"}, LoginRateLimitRPM: 1000}
	h := New(cfg, sessions, Handlers{
		Auth:   handler.NewAuthHandler(client, facade, sessions, renderer, notifier),
		Pages:  handler.NewPageHandler(ctrl, renderer, notifier),
		Action: handler.NewActionHandler(exec, ctrl, renderer, notifier),
		Forms:  handler.NewFormHandler(exec, ctrl, renderer, notifier),
		Health: handler.NewHealthHandler(client),
	}, websocket.NewHub(bus, nil))

	return console{Handler: h, sessions: sessions, events: events}
}

func (c console) count(kind event.Type) int {
	n := 0
	for {
		select {
		case e := <-c.events:
			if e.Type == kind {
				n++
			}
		default:
			return n
		}
	}
}

func crossSitePost(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	return req
}

func TestForgedPostsNeverReachBackend(t *testing.T) {
	t.Parallel()

	sessions := session.NewStore(kv.NewMemoryStore())
	client := apiclient.New("http://127.0.0.1:1/api/v1", sessions, nil)
	api := new(backend.MockRequester)
	c := newConsole(t, client, sessions, event.NewBus(), api)

	requests := []struct {
		target string
		form   url.Values
	}{
		{target: "/actions/hosts/7/delete", form: url.Values{"confirm": {"yes"}}},
		{target: "/forms/admin-create", form: url.Values{"full_name": {"Mallory"}, "email": {"m@evil.example"}, "password": {"longenough"}, "password_confirmation": {"longenough"}}},
		{target: "/settings/api-base", form: url.Values{"api_base_url": {"https://evil.example"}}},
		{target: "/logout"},
	}

	for _, tc := range requests {
		rec := httptest.NewRecorder()
		c.ServeHTTP(rec, crossSitePost(tc.target, tc.form))
		assert.Equal(t, http.StatusForbidden, rec.Code, tc.target)
	}

	api.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
	assert.True(t, c.sessions.Valid(context.Background()))
	assert.Empty(t, c.sessions.APIBaseOverride(context.Background()))
}

func TestSameOriginPostStillRuns(t *testing.T) {
	t.Parallel()

	sessions := session.NewStore(kv.NewMemoryStore())
	client := apiclient.New("http://127.0.0.1:1/api/v1", sessions, nil)
	api := new(backend.MockRequester)
	api.On("Request", "/admin/hosts/7", apiclient.RequestOptions{Method: http.MethodDelete}).Return(`{}`, nil).Once()
	c := newConsole(t, client, sessions, event.NewBus(), api)

	req := httptest.NewRequest(http.MethodPost, "/actions/hosts/7/delete", strings.NewReader("confirm=yes"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pages/hosts", rec.Header().Get("Location"))
	api.AssertExpectations(t)
}

func TestRejectedTokenAnnouncesLoginOnce(t *testing.T) {
	t.Parallel()

	backendServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	t.Cleanup(backendServer.Close)

	sessions := session.NewStore(kv.NewMemoryStore())
	client := apiclient.New(backendServer.URL+"/api/v1", sessions, backendServer.Client())
	c := newConsole(t, client, sessions, event.NewBus(), nil)

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/hosts", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, sessions.Valid(context.Background()))
	assert.Equal(t, 1, c.count(event.TypeSessionCleared))
}
