//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginThenBrowseHosts(t *testing.T) {
	s := newConsoleServer(t)

	got := s.get(t, "/pages/hosts")
	require.Equal(t, http.StatusSeeOther, got.status)
	require.Equal(t, "/login", got.location)

	bad := s.post(t, "/login", url.Values{"email": {adminEmail}, "password": {"wrong"}})
	require.Equal(t, http.StatusUnauthorized, bad.status)
	assert.Contains(t, bad.body, "Incorrect email or password")

	s.login(t)

	got = s.get(t, "/")
	require.Equal(t, "/pages/dashboard", got.location)

	got = s.get(t, "/pages/dashboard")
	require.Equal(t, http.StatusOK, got.status)
	assert.Contains(t, got.body, "Total Hosts")
	assert.Contains(t, got.body, "Ada Admin")

	got = s.get(t, "/pages/hosts?search=jane")
	require.Equal(t, http.StatusOK, got.status)
	assert.Contains(t, got.body, "Jane Doe")
	assert.NotContains(t, got.body, "John Roe")
}

func TestDeleteHostAsksFirst(t *testing.T) {
	s := newConsoleServer(t)
	s.login(t)

	got := s.get(t, "/actions/hosts/7/delete?name=Jane+Doe")
	require.Equal(t, http.StatusOK, got.status)
	assert.Contains(t, got.body, "permanently delete host")
	assert.Empty(t, s.backend.deletedIDs())

	got = s.post(t, "/actions/hosts/7/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, got.status)
	require.Equal(t, "/pages/hosts", got.location)
	assert.Equal(t, []int64{7}, s.backend.deletedIDs())

	got = s.get(t, "/pages/hosts")
	require.Equal(t, http.StatusOK, got.status)
	assert.Contains(t, got.body, "Host deleted successfully")
	assert.NotContains(t, got.body, "Jane Doe")
}

func TestRejectedSessionReturnsToLogin(t *testing.T) {
	s := newConsoleServer(t)
	s.login(t)

	s.backend.expire()

	got := s.get(t, "/pages/hosts")
	require.Equal(t, http.StatusSeeOther, got.status)
	require.Equal(t, "/login", got.location)
	assert.False(t, s.sessions.Valid(context.Background()))

	got = s.get(t, "/pages/dashboard")
	require.Equal(t, http.StatusSeeOther, got.status)
	require.Equal(t, "/login", got.location)
}

func TestLiveSearchOverWebsocket(t *testing.T) {
	s := newConsoleServer(t)
	s.login(t)

	got := s.get(t, "/pages/hosts")
	require.Equal(t, http.StatusOK, got.status)

	wsURL := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// The hub may not have registered the connection yet; keep typing
	// until a render arrives.
	renders := make(chan string, 1)
	go func() {
		for {
			var msg struct {
				Type    string `json:"type"`
				Payload struct {
					Page string `json:"page"`
					HTML string `json:"html"`
				} `json:"payload"`
			}
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if json.Unmarshal(raw, &msg) == nil && msg.Type == "render" && msg.Payload.Page == "hosts" {
				renders <- msg.Payload.HTML
				return
			}
		}
	}()

	var html string
	require.Eventually(t, func() bool {
		select {
		case html = <-renders:
			return true
		default:
		}
		_ = conn.WriteJSON(map[string]string{"type": "search", "page": "hosts", "value": "john"})
		return false
	}, 3*time.Second, 100*time.Millisecond)

	assert.Contains(t, html, "John Roe")
	assert.NotContains(t, html, "Jane Doe")
}

func TestHealth(t *testing.T) {
	s := newConsoleServer(t)

	resp, err := s.client.Get(s.URL + "/health?deep=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Success bool `json:"success"`
		Data    struct {
			Status    string `json:"status"`
			BackendOK *bool  `json:"backend_ok"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.True(t, parsed.Success)
	assert.Equal(t, "ok", parsed.Data.Status)
	require.NotNil(t, parsed.Data.BackendOK)
}
