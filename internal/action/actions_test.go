package action

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admin-console/internal/apiclient"
	"admin-console/internal/backend"
	"admin-console/internal/model"
	"admin-console/internal/view"
	"admin-console/pkg/apierror"
)

func newExecutor() (*Executor, *backend.MockRequester) {
	api := new(backend.MockRequester)
	return NewExecutor(backend.New(api)), api
}

func reply(s string) *string { return &s }

func TestRejectWithBlankReasonNeverCallsBackend(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()

	for _, answer := range []string{"", "   ", "\t\n"} {
		_, err := exec.Run(context.Background(), Request{Entity: "cars", ID: 3, Verb: "reject"}, Answers{Reply: reply(answer)})
		require.Error(t, err)
		assert.True(t, IsInputError(err))
		assert.Equal(t, "Rejection reason is required", apierror.Message(err))
	}

	api.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
}

func TestRejectSendsTrimmedReason(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()
	api.On("Request", "/admin/cars/3/reject", apiclient.RequestOptions{Method: http.MethodPut, Body: model.RejectCarRequest{RejectionReason: "blurry photos"}}).
		Return(`{"message":"ok"}`, nil).
		Once()

	out, err := exec.Run(context.Background(), Request{Entity: "cars", ID: 3, Verb: "reject"}, Answers{Reply: reply("  blurry photos ")})
	require.NoError(t, err)
	assert.Equal(t, "Car rejected successfully", out.Toast)
	api.AssertExpectations(t)
}

func TestApproveReloadsWhereItStarted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		fromDetail bool
		want       view.Route
	}{
		{name: "from the list", want: view.Route{Page: view.PageCars}},
		{name: "from the detail view", fromDetail: true, want: view.Route{Page: view.PageCarDetail, ID: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, api := newExecutor()
			api.On("Request", "/admin/cars/42/approve", apiclient.RequestOptions{Method: http.MethodPut}).
				Return(`{"message":"approved"}`, nil).
				Once()

			out, err := exec.Run(context.Background(), Request{Entity: "cars", ID: 42, Verb: "approve", FromDetail: tt.fromDetail}, Answers{Accept: true})
			require.NoError(t, err)
			assert.False(t, out.Failed)
			assert.Equal(t, "Car approved successfully", out.Toast)
			assert.Equal(t, tt.want, out.Next)
			api.AssertNumberOfCalls(t, "Request", 1)
		})
	}
}

func TestDeleteFromDetailReturnsToList(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()
	api.On("Request", "/admin/hosts/7", apiclient.RequestOptions{Method: http.MethodDelete}).Return(`{}`, nil).Once()

	out, err := exec.Run(context.Background(), Request{Entity: "hosts", ID: 7, Verb: "delete", FromDetail: true}, Answers{Accept: true})
	require.NoError(t, err)
	assert.Equal(t, "Host deleted successfully", out.Toast)
	assert.Equal(t, view.Route{Page: view.PageHosts}, out.Next)
}

func TestDeclinedConfirmationSkipsBackend(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()

	_, err := exec.Run(context.Background(), Request{Entity: "hosts", ID: 7, Verb: "deactivate"}, Answers{})
	require.ErrorIs(t, err, model.ErrActionCancelled)

	_, err = exec.Run(context.Background(), Request{Entity: "cars", ID: 7, Verb: "reject"}, Answers{})
	require.ErrorIs(t, err, model.ErrActionCancelled)

	api.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
}

func TestShowCarRunsWithoutConfirmation(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()
	api.On("Request", "/admin/cars/5/show", apiclient.RequestOptions{Method: http.MethodPut}).Return(`{}`, nil).Once()

	dialog := NewFormDialog(nil, "")
	out, err := exec.Run(context.Background(), Request{Entity: "cars", ID: 5, Verb: "show"}, dialog)
	require.NoError(t, err)
	assert.Equal(t, "Car shown successfully", out.Toast)

	_, pending := dialog.Pending()
	assert.False(t, pending)
}

func TestFormDialogPendingQuestions(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()

	t.Run("delete asks with the record name", func(t *testing.T) {
		dialog := NewFormDialog(url.Values{"name": {"Jane Doe"}}, "")
		_, err := exec.Run(context.Background(), Request{Entity: "hosts", ID: 7, Verb: "delete", Values: url.Values{"name": {"Jane Doe"}}}, dialog)
		require.ErrorIs(t, err, model.ErrDialogPending)

		question, ok := dialog.Pending()
		require.True(t, ok)
		assert.Equal(t, `Are you sure you want to permanently delete host "Jane Doe"? This action cannot be undone.`, question.Message)
		assert.False(t, question.Prompt)
		assert.Empty(t, question.Hidden)
	})

	t.Run("reject prompts for a reason", func(t *testing.T) {
		dialog := NewFormDialog(nil, exec.PromptField("cars", "reject"))
		_, err := exec.Run(context.Background(), Request{Entity: "cars", ID: 3, Verb: "reject"}, dialog)
		require.ErrorIs(t, err, model.ErrDialogPending)

		question, ok := dialog.Pending()
		require.True(t, ok)
		assert.True(t, question.Prompt)
		assert.Equal(t, "reason", question.Field)
		assert.Equal(t, "Please provide a reason for rejection:", question.Message)
	})

	t.Run("status change carries submitted fields", func(t *testing.T) {
		values := url.Values{"new_status": {"completed"}, "reason": {" done "}}
		dialog := NewFormDialog(values, "")
		_, err := exec.Run(context.Background(), Request{Entity: "bookings", ID: 9, Verb: "status", Values: values}, dialog)
		require.ErrorIs(t, err, model.ErrDialogPending)

		question, _ := dialog.Pending()
		assert.Equal(t, map[string]string{"new_status": "completed", "reason": "done"}, question.Hidden)
	})

	api.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
}

func TestConfirmedStatusChange(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()
	api.On("Request", "/admin/bookings/9/status?new_status=completed", apiclient.RequestOptions{Method: http.MethodPut}).
		Return(`{}`, nil).
		Once()

	values := url.Values{"new_status": {"completed"}, "confirm": {"yes"}}
	out, err := exec.Run(context.Background(), Request{Entity: "bookings", ID: 9, Verb: "status", FromDetail: true, Values: values}, NewFormDialog(values, ""))
	require.NoError(t, err)
	assert.Equal(t, "Booking status updated successfully", out.Toast)
	assert.Equal(t, view.Route{Page: view.PageBookingDetail, ID: 9}, out.Next)
}

func TestStatusChangeRequiresStatus(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()

	_, err := exec.Run(context.Background(), Request{Entity: "withdrawals", ID: 2, Verb: "status"}, Answers{Accept: true})
	require.True(t, IsInputError(err))
	api.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
}

func TestBackendFailureBecomesToast(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()
	api.On("Request", "/admin/hosts/7/deactivate", apiclient.RequestOptions{Method: http.MethodPut}).
		Return(nil, apierror.RequestFailed("Host not found", http.StatusNotFound)).
		Once()

	out, err := exec.Run(context.Background(), Request{Entity: "hosts", ID: 7, Verb: "deactivate", FromDetail: true}, Answers{Accept: true})
	require.NoError(t, err)
	assert.True(t, out.Failed)
	assert.Equal(t, "Error deactivating host: Host not found", out.Toast)
	assert.Equal(t, view.Route{Page: view.PageHostDetail, ID: 7}, out.Next)
}

func TestSessionLossPropagates(t *testing.T) {
	t.Parallel()

	exec, api := newExecutor()
	api.On("Request", "/admin/admins/3/activate", apiclient.RequestOptions{Method: http.MethodPut}).
		Return(nil, apierror.Unauthorized()).
		Once()

	_, err := exec.Run(context.Background(), Request{Entity: "admins", ID: 3, Verb: "activate"}, Answers{Accept: true})
	require.True(t, IsSessionError(err))
}

func TestUnknownActions(t *testing.T) {
	t.Parallel()

	exec, _ := newExecutor()

	_, err := exec.Run(context.Background(), Request{Entity: "cars", ID: 1, Verb: "paint"}, Answers{Accept: true})
	require.ErrorIs(t, err, model.ErrUnknownAction)

	_, err = exec.Run(context.Background(), Request{Entity: "hosts", Verb: "delete"}, Answers{Accept: true})
	require.ErrorIs(t, err, model.ErrMissingID)

	assert.True(t, exec.Known("support", "reopen"))
	assert.False(t, exec.Known("withdrawals", "delete"))
}
