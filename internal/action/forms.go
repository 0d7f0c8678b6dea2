package action

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"admin-console/internal/model"
	"admin-console/internal/view"
	"admin-console/pkg/apierror"
)

const minPasswordLength = 8

const (
	FormAdminCreate  = "admin-create"
	FormAdminUpdate  = "admin-update"
	FormPassword     = "password"
	FormProfile      = "profile"
	FormNotification = "notification"
	FormSupportReply = "support-reply"
	FormNewsletter   = "newsletter"
)

// Submit handles a posted form. Validation problems come back as an
// Outcome whose Next carries FormError; nothing is sent to the backend in
// that case.
func (e *Executor) Submit(ctx context.Context, form string, values url.Values) (Outcome, error) {
	if values == nil {
		values = url.Values{}
	}

	var (
		outcome Outcome
		err     error
	)
	switch form {
	case FormAdminCreate:
		outcome, err = e.createAdmin(ctx, values)
	case FormAdminUpdate:
		outcome, err = e.updateAdmin(ctx, values)
	case FormPassword:
		outcome, err = e.changePassword(ctx, values)
	case FormProfile:
		outcome, err = e.updateProfile(ctx, values)
	case FormNotification:
		outcome, err = e.sendNotification(ctx, values)
	case FormSupportReply:
		outcome, err = e.replyToConversation(ctx, values)
	case FormNewsletter:
		outcome, err = e.sendNewsletter(ctx, values)
	default:
		return Outcome{}, fmt.Errorf("%w: form %s", model.ErrUnknownAction, form)
	}

	if err != nil && !IsSessionError(err) {
		slog.Warn("form submission failed", "form", form, "error", apierror.Message(err))
	}
	return outcome, err
}

func field(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func idField(values url.Values) int64 {
	return idFieldNamed(values, "id")
}

// invalid reopens route with message shown inside the form.
func invalid(route view.Route, message string) Outcome {
	route.FormError = message
	return Outcome{Next: route, Failed: true}
}

// failed reports a backend rejection. Session errors propagate so the
// caller can send the admin to login.
func failed(route view.Route, gerund string, noun string, err error) (Outcome, error) {
	if IsSessionError(err) {
		return Outcome{}, err
	}
	return Outcome{Toast: fmt.Sprintf("Error %s %s: %s", gerund, noun, apierror.Message(err)), Failed: true, Next: route}, nil
}

// ValidateAdmin checks an admin form. Passwords are checked only when
// creating.
func ValidateAdmin(req model.CreateAdminRequest, creating bool) error {
	if req.FullName == "" || req.Email == "" {
		return apierror.MalformedInput("Please fill in all required fields.", "full_name")
	}
	if !creating {
		return nil
	}
	if len(req.Password) < minPasswordLength {
		return apierror.MalformedInput("Password must be at least 8 characters.", "password")
	}
	if req.Password != req.PasswordConfirmation {
		return apierror.MalformedInput("Passwords do not match.", "password_confirmation")
	}
	return nil
}

// ValidatePassword checks a password change. own is the admin changing
// their own password, which needs the current one.
func ValidatePassword(req model.ChangePasswordRequest, own bool) error {
	if own && req.CurrentPassword == "" {
		return apierror.MalformedInput("Please enter your current password.", "current_password")
	}
	if len(req.NewPassword) < minPasswordLength {
		return apierror.MalformedInput("New password must be at least 8 characters.", "new_password")
	}
	if req.NewPassword != req.NewPasswordConfirmation {
		return apierror.MalformedInput("New passwords do not match.", "new_password_confirmation")
	}
	return nil
}

func adminFromForm(values url.Values) model.CreateAdminRequest {
	role := field(values, "role")
	if role == "" {
		role = "admin"
	}
	return model.CreateAdminRequest{
		FullName:             field(values, "full_name"),
		Email:                field(values, "email"),
		Password:             values.Get("password"),
		PasswordConfirmation: values.Get("password_confirmation"),
		Role:                 role,
		IsActive:             values.Get("is_active") == "true",
	}
}

func (e *Executor) createAdmin(ctx context.Context, values url.Values) (Outcome, error) {
	form := view.Route{Page: view.PageAdmins, Form: "create"}

	req := adminFromForm(values)
	if err := ValidateAdmin(req, true); err != nil {
		return invalid(form, apierror.Message(err)), nil
	}

	created, err := e.facade.CreateAdmin(ctx, req)
	if err != nil {
		return failed(form, "creating", "admin", err)
	}

	slog.Info("admin created", "admin_id", created.ID, "role", created.Role)
	return Outcome{Toast: "Admin created successfully", Next: view.Route{Page: view.PageAdmins}}, nil
}

func (e *Executor) updateAdmin(ctx context.Context, values url.Values) (Outcome, error) {
	id := idField(values)
	if id == 0 {
		return Outcome{}, model.ErrMissingID
	}
	form := view.Route{Page: view.PageAdminDetail, ID: id, Form: "edit"}

	req := adminFromForm(values)
	if err := ValidateAdmin(req, false); err != nil {
		return invalid(form, apierror.Message(err)), nil
	}

	_, err := e.facade.UpdateAdmin(ctx, id, model.UpdateAdminRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return failed(form, "updating", "admin", err)
	}

	return Outcome{Toast: "Admin updated successfully", Next: view.Route{Page: view.PageAdminDetail, ID: id}}, nil
}

// changePassword covers both the admin's own password (no id) and another
// admin's password (id set).
func (e *Executor) changePassword(ctx context.Context, values url.Values) (Outcome, error) {
	id := idField(values)
	own := id == 0

	req := model.ChangePasswordRequest{
		NewPassword:             values.Get("new_password"),
		NewPasswordConfirmation: values.Get("new_password_confirmation"),
	}
	form := view.Route{Page: view.PageAdminDetail, ID: id, Form: "password"}
	if own {
		req.CurrentPassword = values.Get("current_password")
		form = view.Route{Page: view.PageMyProfile}
	}

	if err := ValidatePassword(req, own); err != nil {
		return invalid(form, apierror.Message(err)), nil
	}

	if own {
		if _, err := e.facade.ChangeOwnPassword(ctx, req); err != nil {
			return failed(form, "changing", "password", err)
		}
		return Outcome{Toast: "Password changed successfully", Next: view.Route{Page: view.PageMyProfile}}, nil
	}

	if _, err := e.facade.ChangeAdminPassword(ctx, id, req); err != nil {
		return failed(form, "changing", "admin password", err)
	}
	return Outcome{Toast: "Admin password changed successfully", Next: view.Route{Page: view.PageAdminDetail, ID: id}}, nil
}

func (e *Executor) updateProfile(ctx context.Context, values url.Values) (Outcome, error) {
	form := view.Route{Page: view.PageMyProfile}

	req := model.UpdateProfileRequest{FullName: field(values, "full_name"), Email: field(values, "email")}
	if req.FullName == "" || req.Email == "" {
		return invalid(form, "Please fill in all required fields."), nil
	}

	if _, err := e.facade.UpdateOwnProfile(ctx, req); err != nil {
		return failed(form, "updating", "profile", err)
	}
	return Outcome{Toast: "Profile updated successfully", Next: form}, nil
}

func (e *Executor) sendNotification(ctx context.Context, values url.Values) (Outcome, error) {
	form := view.Route{Page: view.PageNotifications}

	req := model.NotificationRequest{
		Title:   field(values, "title"),
		Message: field(values, "message"),
		Type:    field(values, "type"),
	}
	if req.Type == "" {
		req.Type = "info"
	}
	if req.Title == "" || req.Message == "" {
		return invalid(form, "Please fill in all required fields."), nil
	}

	var (
		resp model.MessageResponse
		err  error
	)
	switch field(values, "recipient") {
	case "", "hosts":
		resp, err = e.facade.BroadcastToHosts(ctx, req)
	case "clients":
		resp, err = e.facade.BroadcastToClients(ctx, req)
	case "user":
		req.UserID = idFieldNamed(values, "user_id")
		req.UserType = field(values, "user_type")
		if req.UserID == 0 || (req.UserType != "host" && req.UserType != "client") {
			return invalid(form, "Please choose a user type and a valid user ID."), nil
		}
		resp, err = e.facade.SendToUser(ctx, req)
	default:
		return invalid(form, "Please choose who receives the notification."), nil
	}
	if err != nil {
		return failed(form, "sending", "notification", err)
	}

	return Outcome{Toast: successMessage(resp, "Notification sent successfully"), Next: form}, nil
}

func (e *Executor) replyToConversation(ctx context.Context, values url.Values) (Outcome, error) {
	id := idField(values)
	if id == 0 {
		return Outcome{}, model.ErrMissingID
	}
	here := view.Route{Page: view.PageSupportDetail, ID: id}

	message := field(values, "message")
	if message == "" {
		return invalid(here, "Please enter a message."), nil
	}

	if _, err := e.facade.RespondToConversation(ctx, id, message); err != nil {
		return failed(here, "sending", "reply", err)
	}
	return Outcome{Toast: "Reply sent successfully", Next: here}, nil
}

func (e *Executor) sendNewsletter(ctx context.Context, values url.Values) (Outcome, error) {
	here := view.Route{Page: view.PageSubscribers}

	req := model.NewsletterRequest{Subject: field(values, "subject"), Message: field(values, "message")}
	if req.Subject == "" || req.Message == "" {
		return invalid(here, "Please fill in all required fields."), nil
	}

	resp, err := e.facade.SendNewsletter(ctx, req)
	if err != nil {
		return failed(here, "sending", "newsletter", err)
	}
	return Outcome{Toast: successMessage(resp, "Newsletter sent successfully"), Next: here}, nil
}

func idFieldNamed(values url.Values, key string) int64 {
	id, err := strconv.ParseInt(field(values, key), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func successMessage(resp model.MessageResponse, fallback string) string {
	if resp.Message == "" {
		return fallback
	}
	return "Success! " + resp.Message
}
