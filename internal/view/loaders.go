package view

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"admin-console/internal/backend"
	"admin-console/internal/model"
	"admin-console/internal/render"
	"admin-console/pkg/apierror"
)

const superAdminOnly = "Only super admins can access this page"

func (c *Controller) load(ctx context.Context, route Route) (template.HTML, error) {
	switch route.Page {
	case PageDashboard:
		return c.loadDashboard(ctx)
	case PageHosts:
		return loadList(ctx, c, PageHosts, "hosts", c.facade.Hosts, func(p model.HostPage) ([]model.Host, model.PageMeta) {
			return p.Hosts, p.PageMeta
		}, nil)
	case PageHostDetail:
		return loadDetail(ctx, c, route, "host", c.facade.Host, c.hostExtras)
	case PageClients:
		return loadList(ctx, c, PageClients, "clients", c.facade.Clients, func(p model.ClientPage) ([]model.Client, model.PageMeta) {
			return p.Items, p.PageMeta
		}, nil)
	case PageClientDetail:
		return loadDetail(ctx, c, route, "client", c.facade.Client, nil)
	case PageCars:
		return loadList(ctx, c, PageCars, "cars", c.facade.Cars, func(p model.CarPage) ([]model.Car, model.PageMeta) {
			return p.Cars, p.PageMeta
		}, nil)
	case PageCarDetail:
		return loadDetail(ctx, c, route, "car", c.facade.Car, nil)
	case PageFeedback:
		return loadList(ctx, c, PageFeedback, "feedback", c.facade.Feedback, func(p model.FeedbackPage) ([]model.Feedback, model.PageMeta) {
			return p.Feedbacks, p.PageMeta
		}, nil)
	case PageNotifications:
		return c.renderer.Render(string(PageNotifications), render.Detail{Extra: formError(route)})
	case PageAdmins:
		if route.Form == "create" {
			return c.renderer.Render("admin-form", render.Detail{Record: model.Admin{IsActive: true, Role: "admin"}, Extra: formError(route)})
		}
		return loadList(ctx, c, PageAdmins, "admins", c.facade.Admins, func(p model.AdminPage) ([]model.Admin, model.PageMeta) {
			return p.Admins, p.PageMeta
		}, nil)
	case PageAdminDetail:
		return c.loadAdminDetail(ctx, route)
	case PagePaymentMethods:
		return loadList(ctx, c, PagePaymentMethods, "payment methods", c.facade.PaymentMethods, func(p model.PaymentMethodPage) ([]model.PaymentMethod, model.PageMeta) {
			return p.PaymentMethods, p.PageMeta
		}, nil)
	case PagePaymentMethodDetail:
		return loadDetail(ctx, c, route, "payment method", c.facade.PaymentMethod, nil)
	case PageBookings:
		return loadList(ctx, c, PageBookings, "bookings", c.facade.Bookings, func(p model.BookingPage) ([]model.Booking, model.PageMeta) {
			return p.Bookings, p.PageMeta
		}, func(ctx context.Context) map[string]any {
			stats, err := c.facade.BookingStats(ctx)
			if err != nil {
				slog.Warn("booking stats fetch failed", "error", apierror.Message(err))
				return nil
			}
			return map[string]any{"stats": stats}
		})
	case PageBookingDetail:
		return loadDetail(ctx, c, route, "booking", c.facade.Booking, nil)
	case PageWithdrawals:
		return loadList(ctx, c, PageWithdrawals, "withdrawals", c.facade.Withdrawals, func(p model.WithdrawalPage) ([]model.Withdrawal, model.PageMeta) {
			return p.Withdrawals, p.PageMeta
		}, nil)
	case PageSupport:
		return loadList(ctx, c, PageSupport, "conversations", c.facade.SupportConversations, func(p model.ConversationPage) ([]model.Conversation, model.PageMeta) {
			return p.Conversations, p.PageMeta
		}, nil)
	case PageSupportDetail:
		return loadDetail(ctx, c, route, "conversation", c.facade.SupportConversation, nil)
	case PageSubscribers:
		return loadList(ctx, c, PageSubscribers, "subscribers", c.facade.Subscribers, func(p model.SubscriberPage) ([]model.Subscriber, model.PageMeta) {
			return p.Subscribers, p.PageMeta
		}, func(context.Context) map[string]any {
			return formError(route)
		})
	case PageMyProfile:
		return c.loadProfile(ctx, route)
	}

	return "", fmt.Errorf("%w: %s", model.ErrUnknownPage, route.Page)
}

// loadList fetches one page of a list view and renders it. A page index
// past the end after a shrinking result is clamped and fetched again once.
func loadList[P any, R any](
	ctx context.Context,
	c *Controller,
	page Page,
	noun string,
	fetch func(context.Context, backend.Params) (P, error),
	unpack func(P) ([]R, model.PageMeta),
	extra func(context.Context) map[string]any,
) (template.HTML, error) {
	q := c.Query(page)

	result, err := fetch(ctx, q.Params())
	if err != nil {
		return c.loadFailed(page, "Error loading "+noun, err)
	}

	rows, meta := unpack(result)
	if q.Page > q.Pages(meta.Total) {
		q.Clamp(meta.Total)
		c.storePage(page, q.Page)
		if result, err = fetch(ctx, q.Params()); err != nil {
			return c.loadFailed(page, "Error loading "+noun, err)
		}
		rows, meta = unpack(result)
	}

	data := render.List{
		Pager: render.Pager{
			View:    string(page),
			Search:  q.Search,
			Filters: q.Filters,
			Index:   q.Page,
			Pages:   q.Pages(meta.Total),
			Total:   meta.Total,
		},
		Rows: rows,
	}
	if extra != nil {
		data.Extra = extra(ctx)
	}

	return c.renderer.Render(string(page), data)
}

func loadDetail[T any](
	ctx context.Context,
	c *Controller,
	route Route,
	noun string,
	fetch func(context.Context, int64) (T, error),
	extra func(context.Context, T) map[string]any,
) (template.HTML, error) {
	record, err := fetch(ctx, route.ID)
	if err != nil {
		return c.loadFailed(route.Page, "Error loading "+noun+" details", err)
	}

	data := render.Detail{Record: record, Extra: formError(route)}
	if extra != nil {
		data.Extra = merge(data.Extra, extra(ctx, record))
	}

	return c.renderer.Render(string(route.Page), data)
}

// loadFailed turns a fetch error into the view's error placeholder. Auth
// failures end the load instead.
func (c *Controller) loadFailed(page Page, prefix string, err error) (template.HTML, error) {
	if apierror.Is(err, apierror.CodeUnauthorized) || apierror.Is(err, apierror.CodeUnauthenticated) {
		return "", errSessionLost
	}

	message := apierror.Message(err)
	slog.Warn("view load failed", "page", page, "error", message)

	if page == PageAdmins && strings.Contains(message, "super_admin") {
		return c.renderer.Placeholder(superAdminOnly), nil
	}
	return c.renderer.Placeholder(prefix + ": " + message), nil
}

func (c *Controller) storePage(page Page, index int) {
	c.mu.Lock()
	c.query(page).Page = index
	c.mu.Unlock()
}

// hostExtras fetches the host's cars, payment methods and feedback side by
// side. A failed section is logged and left out of the page.
func (c *Controller) hostExtras(ctx context.Context, host model.Host) map[string]any {
	var (
		mu     sync.Mutex
		extras = map[string]any{}
	)
	keep := func(key string, value any, err error) {
		if err != nil {
			slog.Warn("host detail section fetch failed", "host_id", host.ID, "section", key, "error", apierror.Message(err))
			return
		}
		mu.Lock()
		extras[key] = value
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		page, err := c.facade.HostCars(ctx, host.ID)
		keep("cars", page.Cars, err)
		return nil
	})
	g.Go(func() error {
		page, err := c.facade.HostPaymentMethods(ctx, host.ID)
		keep("payment_methods", page.PaymentMethods, err)
		return nil
	})
	g.Go(func() error {
		page, err := c.facade.HostFeedback(ctx, host.ID)
		keep("feedback", page.Feedbacks, err)
		return nil
	})
	_ = g.Wait()

	return extras
}

func (c *Controller) loadDashboard(ctx context.Context) (template.HTML, error) {
	var (
		data        render.Dashboard
		statsErr    error
		activityErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		data.Stats, statsErr = c.facade.DashboardStats(ctx)
		return nil
	})
	g.Go(func() error {
		var feed model.ActivityFeed
		feed, activityErr = c.facade.RecentActivity(ctx)
		data.Activities = feed.Activities
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{statsErr, activityErr} {
		if apierror.Is(err, apierror.CodeUnauthorized) || apierror.Is(err, apierror.CodeUnauthenticated) {
			return "", errSessionLost
		}
	}
	if statsErr != nil {
		slog.Warn("dashboard stats fetch failed", "error", apierror.Message(statsErr))
		data.StatsError = true
	}
	if activityErr != nil {
		slog.Warn("recent activity fetch failed", "error", apierror.Message(activityErr))
		data.ActivityError = true
	}

	return c.renderer.Render(string(PageDashboard), data)
}

func (c *Controller) loadAdminDetail(ctx context.Context, route Route) (template.HTML, error) {
	admin, err := c.facade.Admin(ctx, route.ID)
	if err != nil {
		return c.loadFailed(route.Page, "Error loading admin details", err)
	}

	switch route.Form {
	case "edit":
		return c.renderer.Render("admin-form", render.Detail{Record: admin, Extra: formError(route)})
	case "password":
		return c.renderer.Render("password-form", render.Detail{Record: admin.ID, Extra: formError(route)})
	}

	return c.renderer.Render(string(PageAdminDetail), render.Detail{Record: admin})
}

func (c *Controller) loadProfile(ctx context.Context, route Route) (template.HTML, error) {
	admin, err := c.facade.CurrentAdmin(ctx)
	if err != nil {
		return c.loadFailed(route.Page, "Error loading profile", err)
	}
	if admin.Known() {
		if err := c.sessions.SaveProfile(ctx, admin); err != nil {
			slog.Warn("failed to cache admin profile", "error", err)
		}
	}

	return c.renderer.Render(string(PageMyProfile), render.Detail{Record: admin, Extra: formError(route)})
}

func merge(into map[string]any, from map[string]any) map[string]any {
	if into == nil {
		return from
	}
	for k, v := range from {
		into[k] = v
	}
	return into
}

func formError(route Route) map[string]any {
	if route.FormError == "" {
		return nil
	}
	return map[string]any{"error": route.FormError}
}
