package backend

import (
	"context"
	"net/http"

	"admin-console/internal/model"
)

func (f *Facade) SupportConversations(ctx context.Context, params Params) (model.ConversationPage, error) {
	return get[model.ConversationPage](ctx, f, withQuery("/admin/support/conversations", params))
}

func (f *Facade) SupportConversation(ctx context.Context, id int64) (model.Conversation, error) {
	return get[model.Conversation](ctx, f, idPath("/admin/support/conversations", id))
}

func (f *Facade) RespondToConversation(ctx context.Context, id int64, message string) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPost, idPath("/admin/support/conversations", id, "respond"), model.RespondRequest{Message: message})
}

func (f *Facade) CloseConversation(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/support/conversations", id, "close"), nil)
}

func (f *Facade) ReopenConversation(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/support/conversations", id, "reopen"), nil)
}

func (f *Facade) Bookings(ctx context.Context, params Params) (model.BookingPage, error) {
	return get[model.BookingPage](ctx, f, withQuery("/admin/bookings", params))
}

func (f *Facade) Booking(ctx context.Context, id int64) (model.Booking, error) {
	return get[model.Booking](ctx, f, idPath("/admin/bookings", id))
}

// UpdateBookingStatus passes the transition in the query string, not the
// body.
func (f *Facade) UpdateBookingStatus(ctx context.Context, id int64, status string, reason string) (model.MessageResponse, error) {
	path := withQuery(idPath("/admin/bookings", id, "status"), Params{"new_status": status, "reason": reason})
	return send(ctx, f, http.MethodPut, path, nil)
}

func (f *Facade) CancelBooking(ctx context.Context, id int64, reason string) (model.MessageResponse, error) {
	path := withQuery(idPath("/admin/bookings", id, "cancel"), Params{"reason": reason})
	return send(ctx, f, http.MethodPost, path, nil)
}

func (f *Facade) ConfirmBooking(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPost, idPath("/admin/bookings", id, "confirm"), nil)
}

func (f *Facade) DeleteBooking(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodDelete, idPath("/admin/bookings", id), nil)
}

func (f *Facade) BookingStats(ctx context.Context) (model.BookingStats, error) {
	return get[model.BookingStats](ctx, f, "/admin/bookings/stats")
}

func (f *Facade) Withdrawals(ctx context.Context, params Params) (model.WithdrawalPage, error) {
	return get[model.WithdrawalPage](ctx, f, withQuery("/admin/withdrawals", params))
}

func (f *Facade) Withdrawal(ctx context.Context, id int64) (model.Withdrawal, error) {
	return get[model.Withdrawal](ctx, f, idPath("/admin/withdrawals", id))
}

func (f *Facade) UpdateWithdrawalStatus(ctx context.Context, id int64, req model.WithdrawalStatusRequest) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPatch, idPath("/admin/withdrawals", id), req)
}

func (f *Facade) Subscribers(ctx context.Context, params Params) (model.SubscriberPage, error) {
	return get[model.SubscriberPage](ctx, f, withQuery("/admin/subscribers", params))
}

func (f *Facade) DeleteSubscriber(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodDelete, idPath("/admin/subscribers", id), nil)
}

func (f *Facade) SendNewsletter(ctx context.Context, req model.NewsletterRequest) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPost, "/admin/subscribers/newsletter", req)
}
