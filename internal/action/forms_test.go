package action

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admin-console/internal/apiclient"
	"admin-console/internal/backend"
	"admin-console/internal/kv"
	"admin-console/internal/model"
	"admin-console/internal/session"
	"admin-console/internal/view"
	"admin-console/pkg/apierror"
)

// adminBackend stores admins created through the API in memory.
type adminBackend struct {
	mu     sync.Mutex
	nextID int64
	admins map[int64]model.Admin
	bodies []model.CreateAdminRequest
}

func (b *adminBackend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/admin/admins", func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateAdminRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		b.mu.Lock()
		b.nextID++
		admin := model.Admin{ID: b.nextID, FullName: req.FullName, Email: req.Email, Role: req.Role, IsActive: req.IsActive, CreatedAt: "2026-01-02T03:04:05"}
		b.admins[admin.ID] = admin
		b.bodies = append(b.bodies, req)
		b.mu.Unlock()

		writeJSON(w, http.StatusCreated, admin)
	})
	mux.HandleFunc("GET /api/v1/admin/admins/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

		b.mu.Lock()
		admin, ok := b.admins[id]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Admin not found"})
			return
		}
		writeJSON(w, http.StatusOK, admin)
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCreateAdminRoundTrip(t *testing.T) {
	t.Parallel()

	fake := &adminBackend{admins: map[int64]model.Admin{}}
	srv := httptest.NewServer(fake.routes())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	sessions := session.NewStore(kv.NewMemoryStore())
	require.NoError(t, sessions.Save(ctx, "tok", model.Admin{ID: 1, FullName: "Root", Role: model.RoleSuperAdmin}))

	facade := backend.New(apiclient.New(srv.URL+"/api/v1", sessions, srv.Client()))
	exec := NewExecutor(facade)

	out, err := exec.Submit(ctx, FormAdminCreate, url.Values{
		"full_name":             {" Grace Hopper "},
		"email":                 {"grace@x.com"},
		"password":              {"longenough"},
		"password_confirmation": {"longenough"},
		"role":                  {"super_admin"},
		"is_active":             {"true"},
	})
	require.NoError(t, err)
	assert.False(t, out.Failed)
	assert.Equal(t, "Admin created successfully", out.Toast)
	assert.Equal(t, view.Route{Page: view.PageAdmins}, out.Next)

	require.Len(t, fake.bodies, 1)
	assert.Equal(t, model.CreateAdminRequest{
		FullName:             "Grace Hopper",
		Email:                "grace@x.com",
		Password:             "longenough",
		PasswordConfirmation: "longenough",
		Role:                 "super_admin",
		IsActive:             true,
	}, fake.bodies[0])

	fetched, err := facade.Admin(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", fetched.FullName)
	assert.Equal(t, "grace@x.com", fetched.Email)
	assert.Equal(t, "super_admin", fetched.Role)
	assert.True(t, fetched.IsActive)
}

func TestAdminFormValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{
			name:   "missing name",
			values: url.Values{"email": {"a@x.com"}, "password": {"12345678"}, "password_confirmation": {"12345678"}},
			want:   "Please fill in all required fields.",
		},
		{
			name:   "short password",
			values: url.Values{"full_name": {"A"}, "email": {"a@x.com"}, "password": {"1234567"}, "password_confirmation": {"1234567"}},
			want:   "Password must be at least 8 characters.",
		},
		{
			name:   "mismatched confirmation",
			values: url.Values{"full_name": {"A"}, "email": {"a@x.com"}, "password": {"12345678"}, "password_confirmation": {"87654321"}},
			want:   "Passwords do not match.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, api := newExecutor()

			out, err := exec.Submit(context.Background(), FormAdminCreate, tt.values)
			require.NoError(t, err)
			assert.True(t, out.Failed)
			assert.Equal(t, view.Route{Page: view.PageAdmins, Form: "create", FormError: tt.want}, out.Next)
			api.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
		})
	}
}

func TestPasswordFormValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{
			name:   "own change needs current password",
			values: url.Values{"new_password": {"newpassword"}, "new_password_confirmation": {"newpassword"}},
			want:   "Please enter your current password.",
		},
		{
			name:   "short new password",
			values: url.Values{"id": {"4"}, "new_password": {"short"}, "new_password_confirmation": {"short"}},
			want:   "New password must be at least 8 characters.",
		},
		{
			name:   "mismatched new password",
			values: url.Values{"current_password": {"old"}, "new_password": {"newpassword"}, "new_password_confirmation": {"newpassw0rd"}},
			want:   "New passwords do not match.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, api := newExecutor()

			out, err := exec.Submit(context.Background(), FormPassword, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Next.FormError)
			api.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
		})
	}
}

func TestPasswordChanges(t *testing.T) {
	t.Parallel()

	t.Run("own password", func(t *testing.T) {
		exec, api := newExecutor()
		req := model.ChangePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "newpassword", NewPasswordConfirmation: "newpassword"}
		api.On("Request", "/admin/change-password", apiclient.RequestOptions{Method: http.MethodPut, Body: req}).Return(`{}`, nil).Once()

		out, err := exec.Submit(context.Background(), FormPassword, url.Values{
			"current_password":          {"oldpassword"},
			"new_password":              {"newpassword"},
			"new_password_confirmation": {"newpassword"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Password changed successfully", out.Toast)
		assert.Equal(t, view.Route{Page: view.PageMyProfile}, out.Next)
	})

	t.Run("another admin", func(t *testing.T) {
		exec, api := newExecutor()
		req := model.ChangePasswordRequest{NewPassword: "newpassword", NewPasswordConfirmation: "newpassword"}
		api.On("Request", "/admin/admins/4/password", apiclient.RequestOptions{Method: http.MethodPut, Body: req}).Return(`{}`, nil).Once()

		out, err := exec.Submit(context.Background(), FormPassword, url.Values{
			"id":                        {"4"},
			"new_password":              {"newpassword"},
			"new_password_confirmation": {"newpassword"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Admin password changed successfully", out.Toast)
		assert.Equal(t, view.Route{Page: view.PageAdminDetail, ID: 4}, out.Next)
	})
}

func TestNotificationRecipients(t *testing.T) {
	t.Parallel()

	base := model.NotificationRequest{Title: "Heads up", Message: "Maintenance tonight", Type: "warning"}
	single := base
	single.UserID = 12
	single.UserType = "client"

	tests := []struct {
		name      string
		recipient url.Values
		path      string
		body      model.NotificationRequest
	}{
		{name: "hosts", recipient: url.Values{"recipient": {"hosts"}}, path: "/admin/notifications/broadcast-hosts", body: base},
		{name: "clients", recipient: url.Values{"recipient": {"clients"}}, path: "/admin/notifications/broadcast-clients", body: base},
		{name: "one user", recipient: url.Values{"recipient": {"user"}, "user_id": {"12"}, "user_type": {"client"}}, path: "/admin/notifications/send", body: single},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, api := newExecutor()
			api.On("Request", tt.path, apiclient.RequestOptions{Method: http.MethodPost, Body: tt.body}).
				Return(`{"message":"Notification queued for 3 recipients"}`, nil).
				Once()

			values := url.Values{"title": {"Heads up"}, "message": {" Maintenance tonight "}, "type": {"warning"}}
			for k, v := range tt.recipient {
				values[k] = v
			}

			out, err := exec.Submit(context.Background(), FormNotification, values)
			require.NoError(t, err)
			assert.Equal(t, "Success! Notification queued for 3 recipients", out.Toast)
			api.AssertExpectations(t)
		})
	}

	t.Run("requires title and message", func(t *testing.T) {
		exec, api := newExecutor()
		out, err := exec.Submit(context.Background(), FormNotification, url.Values{"title": {"x"}, "message": {"  "}})
		require.NoError(t, err)
		assert.Equal(t, "Please fill in all required fields.", out.Next.FormError)
		api.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
	})
}

func TestProfileAndReplyForms(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()
	api.On("Request", "/admin/profile", apiclient.RequestOptions{Method: http.MethodPut, Body: model.UpdateProfileRequest{FullName: "Ada", Email: "ada@x.com"}}).
		Return(`{}`, nil).
		Once()
	api.On("Request", "/admin/support/conversations/6/respond", apiclient.RequestOptions{Method: http.MethodPost, Body: model.RespondRequest{Message: "On it"}}).
		Return(nil, errBackendDown).
		Once()

	out, err := exec.Submit(context.Background(), FormProfile, url.Values{"full_name": {"Ada"}, "email": {"ada@x.com"}})
	require.NoError(t, err)
	assert.Equal(t, "Profile updated successfully", out.Toast)

	out, err = exec.Submit(context.Background(), FormSupportReply, url.Values{"id": {"6"}, "message": {" On it "}})
	require.NoError(t, err)
	assert.True(t, out.Failed)
	assert.Equal(t, "Error sending reply: backend down", out.Toast)
	assert.Equal(t, view.Route{Page: view.PageSupportDetail, ID: 6}, out.Next)

	_, err = exec.Submit(context.Background(), "survey", nil)
	require.ErrorIs(t, err, model.ErrUnknownAction)
}

var errBackendDown = apierror.RequestFailed("backend down", http.StatusServiceUnavailable)
