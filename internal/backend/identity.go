package backend

import (
	"context"
	"net/http"

	"admin-console/internal/model"
)

func (f *Facade) CurrentAdmin(ctx context.Context) (model.Admin, error) {
	return get[model.Admin](ctx, f, "/admin/me")
}

func (f *Facade) Logout(ctx context.Context) error {
	_, err := send(ctx, f, http.MethodPost, "/admin/auth/logout", nil)
	return err
}

func (f *Facade) UpdateOwnProfile(ctx context.Context, req model.UpdateProfileRequest) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, "/admin/profile", req)
}

func (f *Facade) ChangeOwnPassword(ctx context.Context, req model.ChangePasswordRequest) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, "/admin/change-password", req)
}

func (f *Facade) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	return get[model.DashboardStats](ctx, f, "/admin/dashboard/stats")
}

func (f *Facade) RecentActivity(ctx context.Context) (model.ActivityFeed, error) {
	return get[model.ActivityFeed](ctx, f, "/admin/dashboard/activity")
}

func (f *Facade) VerificationQueueStats(ctx context.Context) (model.VerificationQueueStats, error) {
	return get[model.VerificationQueueStats](ctx, f, "/admin/dashboard/verification-queue")
}

func (f *Facade) RevenueStats(ctx context.Context) (model.RevenueStats, error) {
	return get[model.RevenueStats](ctx, f, "/admin/dashboard/revenue")
}

func (f *Facade) Admins(ctx context.Context, params Params) (model.AdminPage, error) {
	return get[model.AdminPage](ctx, f, withQuery("/admin/admins", params))
}

func (f *Facade) Admin(ctx context.Context, id int64) (model.Admin, error) {
	return get[model.Admin](ctx, f, idPath("/admin/admins", id))
}

func (f *Facade) CreateAdmin(ctx context.Context, req model.CreateAdminRequest) (model.Admin, error) {
	return call[model.Admin](ctx, f, http.MethodPost, "/admin/admins", req)
}

func (f *Facade) UpdateAdmin(ctx context.Context, id int64, req model.UpdateAdminRequest) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/admins", id), req)
}

func (f *Facade) DeleteAdmin(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodDelete, idPath("/admin/admins", id), nil)
}

func (f *Facade) ChangeAdminPassword(ctx context.Context, id int64, req model.ChangePasswordRequest) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/admins", id, "password"), req)
}

func (f *Facade) ActivateAdmin(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/admins", id, "activate"), nil)
}

func (f *Facade) DeactivateAdmin(ctx context.Context, id int64) (model.MessageResponse, error) {
	return send(ctx, f, http.MethodPut, idPath("/admin/admins", id, "deactivate"), nil)
}
