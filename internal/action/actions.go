// Package action turns admin intent into facade calls: confirm, validate,
// call, then report a toast and the view to refresh.
package action

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"admin-console/internal/backend"
	"admin-console/internal/model"
	"admin-console/internal/view"
	"admin-console/pkg/apierror"
)

// Request names one mutation on one record.
type Request struct {
	Entity     string
	ID         int64
	Verb       string
	FromDetail bool
	// Values holds the submitted form: record name, status fields, notes.
	Values url.Values
}

// Outcome is what the admin sees after an action settles.
type Outcome struct {
	Toast  string
	Failed bool
	Next   view.Route
}

type entity struct {
	noun   string
	list   view.Page
	detail view.Page
}

var entities = map[string]entity{
	"hosts":           {noun: "host", list: view.PageHosts, detail: view.PageHostDetail},
	"clients":         {noun: "client", list: view.PageClients, detail: view.PageClientDetail},
	"cars":            {noun: "car", list: view.PageCars, detail: view.PageCarDetail},
	"admins":          {noun: "admin", list: view.PageAdmins, detail: view.PageAdminDetail},
	"payment-methods": {noun: "payment method", list: view.PagePaymentMethods, detail: view.PagePaymentMethodDetail},
	"bookings":        {noun: "booking", list: view.PageBookings, detail: view.PageBookingDetail},
	"withdrawals":     {noun: "withdrawal", list: view.PageWithdrawals},
	"support":         {noun: "conversation", list: view.PageSupport, detail: view.PageSupportDetail},
	"subscribers":     {noun: "subscriber", list: view.PageSubscribers},
}

// step is one action definition. confirm is nil for actions that run
// without asking; prompt replaces confirm for actions that need text.
type step struct {
	gerund   string
	confirm  func(r Request) string
	prompt   string
	field    string
	validate func(r Request, answer string) error
	run      runFunc
	success  string
	removes  bool
}

func ask(message string) func(Request) string {
	return func(Request) string { return message }
}

func askDelete(noun string) func(Request) string {
	return func(r Request) string {
		name := strings.TrimSpace(r.Values.Get("name"))
		if name == "" {
			name = "#" + strconv.FormatInt(r.ID, 10)
		}
		return fmt.Sprintf("Are you sure you want to permanently delete %s %q? This action cannot be undone.", noun, name)
	}
}

type (
	runFunc func(ctx context.Context, f *backend.Facade, r Request, answer string) (model.MessageResponse, error)
	idFunc  func(f *backend.Facade, ctx context.Context, id int64) (model.MessageResponse, error)
)

func byID(fn idFunc) runFunc {
	return func(ctx context.Context, f *backend.Facade, r Request, _ string) (model.MessageResponse, error) {
		return fn(f, ctx, r.ID)
	}
}

func toggles(noun string, label string, activate idFunc, deactivate idFunc) map[string]step {
	return map[string]step{
		"activate": {
			gerund:  "activating",
			confirm: ask(fmt.Sprintf("Are you sure you want to activate this %s account?", noun)),
			run:     byID(activate),
			success: label + " activated successfully",
		},
		"deactivate": {
			gerund:  "deactivating",
			confirm: ask(fmt.Sprintf("Are you sure you want to deactivate this %s account?", noun)),
			run:     byID(deactivate),
			success: label + " deactivated successfully",
		},
	}
}

func catalog() map[string]map[string]step {
	hosts := toggles("host", "Host account", (*backend.Facade).ActivateHost, (*backend.Facade).DeactivateHost)
	hosts["delete"] = step{gerund: "deleting", confirm: askDelete("host"), run: byID((*backend.Facade).DeleteHost), success: "Host deleted successfully", removes: true}

	clients := toggles("client", "Client account", (*backend.Facade).ActivateClient, (*backend.Facade).DeactivateClient)
	clients["delete"] = step{gerund: "deleting", confirm: askDelete("client"), run: byID((*backend.Facade).DeleteClient), success: "Client deleted successfully", removes: true}

	admins := toggles("admin", "Admin", (*backend.Facade).ActivateAdmin, (*backend.Facade).DeactivateAdmin)
	admins["delete"] = step{gerund: "deleting", confirm: askDelete("admin"), run: byID((*backend.Facade).DeleteAdmin), success: "Admin deleted successfully", removes: true}

	return map[string]map[string]step{
		"hosts":   hosts,
		"clients": clients,
		"admins":  admins,
		"cars": {
			"approve": {
				gerund:  "approving",
				confirm: ask("Are you sure you want to approve this car listing?"),
				run:     byID((*backend.Facade).ApproveCar),
				success: "Car approved successfully",
			},
			"reject": {
				gerund:   "rejecting",
				prompt:   "Please provide a reason for rejection:",
				field:    "reason",
				validate: requireReason,
				run: func(ctx context.Context, f *backend.Facade, r Request, answer string) (model.MessageResponse, error) {
					return f.RejectCar(ctx, r.ID, strings.TrimSpace(answer))
				},
				success: "Car rejected successfully",
			},
			"hide": {
				gerund:  "hiding",
				confirm: ask("Are you sure you want to hide this car from public listing?"),
				run:     byID((*backend.Facade).HideCar),
				success: "Car hidden successfully",
			},
			"show": {
				gerund:  "showing",
				run:     byID((*backend.Facade).ShowCar),
				success: "Car shown successfully",
			},
			"delete": {gerund: "deleting", confirm: askDelete("car"), run: byID((*backend.Facade).DeleteCar), success: "Car deleted successfully", removes: true},
		},
		"payment-methods": {
			"delete": {gerund: "deleting", confirm: askDelete("payment method"), run: byID((*backend.Facade).DeletePaymentMethod), success: "Payment method deleted successfully", removes: true},
		},
		"bookings": {
			"confirm": {
				gerund:  "confirming",
				confirm: ask("Are you sure you want to confirm this booking?"),
				run:     byID((*backend.Facade).ConfirmBooking),
				success: "Booking confirmed successfully",
			},
			"cancel": {
				gerund: "cancelling",
				prompt: "Please provide a reason for cancellation (optional):",
				field:  "reason",
				run: func(ctx context.Context, f *backend.Facade, r Request, answer string) (model.MessageResponse, error) {
					return f.CancelBooking(ctx, r.ID, strings.TrimSpace(answer))
				},
				success: "Booking cancelled successfully",
			},
			"status": {
				gerund: "updating",
				confirm: func(r Request) string {
					return fmt.Sprintf("Are you sure you want to change this booking's status to %q?", r.Values.Get("new_status"))
				},
				validate: requireField("new_status", "Please select a status."),
				run: func(ctx context.Context, f *backend.Facade, r Request, _ string) (model.MessageResponse, error) {
					return f.UpdateBookingStatus(ctx, r.ID, strings.TrimSpace(r.Values.Get("new_status")), strings.TrimSpace(r.Values.Get("reason")))
				},
				success: "Booking status updated successfully",
			},
			"delete": {gerund: "deleting", confirm: askDelete("booking"), run: byID((*backend.Facade).DeleteBooking), success: "Booking deleted successfully", removes: true},
		},
		"withdrawals": {
			"status": {
				gerund: "updating",
				confirm: func(r Request) string {
					return fmt.Sprintf("Are you sure you want to mark this withdrawal as %q?", r.Values.Get("status"))
				},
				validate: requireField("status", "Please select a status."),
				run: func(ctx context.Context, f *backend.Facade, r Request, _ string) (model.MessageResponse, error) {
					return f.UpdateWithdrawalStatus(ctx, r.ID, model.WithdrawalStatusRequest{
						Status:    strings.TrimSpace(r.Values.Get("status")),
						AdminNote: strings.TrimSpace(r.Values.Get("admin_note")),
					})
				},
				success: "Withdrawal status updated successfully",
			},
		},
		"support": {
			"close": {
				gerund:  "closing",
				confirm: ask("Are you sure you want to close this conversation?"),
				run:     byID((*backend.Facade).CloseConversation),
				success: "Conversation closed successfully",
			},
			"reopen": {
				gerund:  "reopening",
				confirm: ask("Are you sure you want to reopen this conversation?"),
				run:     byID((*backend.Facade).ReopenConversation),
				success: "Conversation reopened successfully",
			},
		},
		"subscribers": {
			"delete": {gerund: "deleting", confirm: askDelete("subscriber"), run: byID((*backend.Facade).DeleteSubscriber), success: "Subscriber deleted successfully", removes: true},
		},
	}
}

func requireReason(_ Request, answer string) error {
	if strings.TrimSpace(answer) == "" {
		return apierror.MalformedInput("Rejection reason is required", "reason")
	}
	return nil
}

func requireField(field string, message string) func(Request, string) error {
	return func(r Request, _ string) error {
		if strings.TrimSpace(r.Values.Get(field)) == "" {
			return apierror.MalformedInput(message, field)
		}
		return nil
	}
}

// Executor runs record actions against the backend.
type Executor struct {
	facade *backend.Facade
	steps  map[string]map[string]step
}

func NewExecutor(facade *backend.Facade) *Executor {
	return &Executor{facade: facade, steps: catalog()}
}

// Known reports whether entity supports verb.
func (e *Executor) Known(entityName string, verb string) bool {
	_, ok := e.steps[entityName][verb]
	return ok
}

// Asks reports whether the action opens a dialog before running.
func (e *Executor) Asks(entityName string, verb string) bool {
	s := e.steps[entityName][verb]
	return s.prompt != "" || s.confirm != nil
}

// PromptField names the form field a prompting action reads its answer
// from, or "" for confirm-only actions.
func (e *Executor) PromptField(entityName string, verb string) string {
	return e.steps[entityName][verb].field
}

// Origin is the view an action on entity was started from, where its
// dialog returns on cancel.
func (e *Executor) Origin(entityName string, id int64, fromDetail bool) view.Route {
	return entities[entityName].route(id, fromDetail)
}

// Run confirms, validates and performs r. A declined dialog yields
// ErrActionCancelled and an unanswered web dialog ErrDialogPending, both
// without touching the backend. Validation failures are returned as
// MALFORMED_INPUT errors, also before any backend call. Backend failures
// become a failed Outcome whose Next keeps the admin where they were.
func (e *Executor) Run(ctx context.Context, r Request, dialog Dialog) (Outcome, error) {
	ent, ok := entities[r.Entity]
	s, known := e.steps[r.Entity][r.Verb]
	if !ok || !known {
		return Outcome{}, fmt.Errorf("%w: %s/%s", model.ErrUnknownAction, r.Entity, r.Verb)
	}
	if r.ID <= 0 {
		return Outcome{}, model.ErrMissingID
	}
	if r.Values == nil {
		r.Values = url.Values{}
	}

	var answer string
	switch {
	case s.prompt != "":
		reply, answered := dialog.Prompt(ctx, s.prompt)
		if !answered {
			return Outcome{}, declined(dialog)
		}
		answer = reply
	case s.confirm != nil:
		if !dialog.Confirm(ctx, s.confirm(r)) {
			return Outcome{}, declined(dialog)
		}
	}

	if s.validate != nil {
		if err := s.validate(r, answer); err != nil {
			return Outcome{}, err
		}
	}

	here := ent.route(r.ID, r.FromDetail)
	if _, err := s.run(ctx, e.facade, r, answer); err != nil {
		if IsSessionError(err) {
			return Outcome{}, err
		}
		message := fmt.Sprintf("Error %s %s: %s", s.gerund, ent.noun, apierror.Message(err))
		slog.Warn("action failed", "entity", r.Entity, "id", r.ID, "verb", r.Verb, "error", apierror.Message(err))
		return Outcome{Toast: message, Failed: true, Next: here}, nil
	}

	slog.Info("action completed", "entity", r.Entity, "id", r.ID, "verb", r.Verb)

	next := here
	if s.removes {
		next = view.Route{Page: ent.list}
	}
	return Outcome{Toast: s.success, Next: next}, nil
}

// route is the view an action reloads: the record's detail view when the
// action was started there, its list otherwise.
func (e entity) route(id int64, fromDetail bool) view.Route {
	if fromDetail && e.detail != "" {
		return view.Route{Page: e.detail, ID: id}
	}
	return view.Route{Page: e.list}
}

func declined(dialog Dialog) error {
	if fd, ok := dialog.(*FormDialog); ok {
		if _, pending := fd.Pending(); pending {
			return model.ErrDialogPending
		}
	}
	return model.ErrActionCancelled
}

// IsInputError reports whether err is a validation failure the admin can
// fix and resubmit.
func IsInputError(err error) bool {
	return apierror.Is(err, apierror.CodeMalformedInput)
}

// IsSessionError reports whether err means the session is gone.
func IsSessionError(err error) bool {
	return apierror.Is(err, apierror.CodeUnauthorized) || apierror.Is(err, apierror.CodeUnauthenticated)
}
