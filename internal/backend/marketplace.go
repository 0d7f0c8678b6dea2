package backend

import (
	"context"
	"net/http"

	"admin-console/internal/model"
)

func (f *Facade) Hosts(ctx context.Context, params Params) (model.HostPage, error) {
	return get[model.HostPage](ctx, f, withQuery("/admin/hosts", params))
}

func (f *Facade) Host(ctx context.Context, id int64) (model.Host, error) {
	return get[model.Host](ctx, f, idPath("/admin/hosts", id))
}

func (f *Facade) UpdateHost(ctx context.Context, id int64, fields map[string]any) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/hosts", id), fields)
}

func (f *Facade) ActivateHost(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/hosts", id, "activate"), nil)
}

func (f *Facade) DeactivateHost(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/hosts", id, "deactivate"), nil)
}

func (f *Facade) DeleteHost(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodDelete, idPath("/admin/hosts", id), nil)
}

func (f *Facade) HostCars(ctx context.Context, id int64) (model.CarPage, error) {
	return get[model.CarPage](ctx, f, idPath("/admin/hosts", id, "cars"))
}

func (f *Facade) HostPaymentMethods(ctx context.Context, id int64) (model.PaymentMethodPage, error) {
	return get[model.PaymentMethodPage](ctx, f, idPath("/admin/hosts", id, "payment-methods"))
}

func (f *Facade) HostFeedback(ctx context.Context, id int64) (model.FeedbackPage, error) {
	return get[model.FeedbackPage](ctx, f, idPath("/admin/hosts", id, "feedback"))
}

func (f *Facade) Clients(ctx context.Context, params Params) (model.ClientPage, error) {
	return get[model.ClientPage](ctx, f, withQuery("/admin/clients", params))
}

func (f *Facade) Client(ctx context.Context, id int64) (model.Client, error) {
	return get[model.Client](ctx, f, idPath("/admin/clients", id))
}

func (f *Facade) UpdateClient(ctx context.Context, id int64, fields map[string]any) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/clients", id), fields)
}

func (f *Facade) ActivateClient(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/clients", id, "activate"), nil)
}

func (f *Facade) DeactivateClient(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/clients", id, "deactivate"), nil)
}

func (f *Facade) DeleteClient(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodDelete, idPath("/admin/clients", id), nil)
}

func (f *Facade) Cars(ctx context.Context, params Params) (model.CarPage, error) {
	return get[model.CarPage](ctx, f, withQuery("/admin/cars", params))
}

func (f *Facade) Car(ctx context.Context, id int64) (model.Car, error) {
	return get[model.Car](ctx, f, idPath("/admin/cars", id))
}

func (f *Facade) ApproveCar(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/cars", id, "approve"), nil)
}

func (f *Facade) RejectCar(ctx context.Context, id int64, reason string) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/cars", id, "reject"), model.RejectCarRequest{RejectionReason: reason})
}

// UpdateCarStatus sets verification_status directly; the reason is sent
// only when non-empty.
func (f *Facade) UpdateCarStatus(ctx context.Context, id int64, status string, reason string) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/cars", id, "status"), model.CarStatusRequest{
		VerificationStatus: status,
		RejectionReason:    reason,
	})
}

func (f *Facade) HideCar(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/cars", id, "hide"), nil)
}

func (f *Facade) ShowCar(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/cars", id, "show"), nil)
}

func (f *Facade) DeleteCar(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodDelete, idPath("/admin/cars", id), nil)
}

func (f *Facade) Feedback(ctx context.Context, params Params) (model.FeedbackPage, error) {
	return get[model.FeedbackPage](ctx, f, withQuery("/admin/feedback", params))
}

func (f *Facade) BroadcastToHosts(ctx context.Context, req model.NotificationRequest) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPost, "/admin/notifications/broadcast-hosts", req)
}

func (f *Facade) BroadcastToClients(ctx context.Context, req model.NotificationRequest) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPost, "/admin/notifications/broadcast-clients", req)
}

func (f *Facade) SendToUser(ctx context.Context, req model.NotificationRequest) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPost, "/admin/notifications/send", req)
}

func (f *Facade) PaymentMethods(ctx context.Context, params Params) (model.PaymentMethodPage, error) {
	return get[model.PaymentMethodPage](ctx, f, withQuery("/admin/payment-methods", params))
}

func (f *Facade) PaymentMethod(ctx context.Context, id int64) (model.PaymentMethod, error) {
	return get[model.PaymentMethod](ctx, f, idPath("/admin/payment-methods", id))
}

func (f *Facade) DeletePaymentMethod(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodDelete, idPath("/admin/payment-methods", id), nil)
}
