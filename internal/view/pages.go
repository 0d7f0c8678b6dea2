package view

import (
	"fmt"
	"net/url"
	"strconv"
)

type Page string

const (
	PageLogin               Page = "login"
	PageDashboard           Page = "dashboard"
	PageHosts               Page = "hosts"
	PageHostDetail          Page = "hosts-detail"
	PageClients             Page = "clients"
	PageClientDetail        Page = "clients-detail"
	PageCars                Page = "cars"
	PageCarDetail           Page = "cars-detail"
	PageFeedback            Page = "feedback"
	PageNotifications       Page = "notifications"
	PageAdmins              Page = "admins"
	PageAdminDetail         Page = "admins-detail"
	PagePaymentMethods      Page = "payment-methods"
	PagePaymentMethodDetail Page = "payment-methods-detail"
	PageBookings            Page = "bookings"
	PageBookingDetail       Page = "bookings-detail"
	PageWithdrawals         Page = "withdrawals"
	PageSupport             Page = "support"
	PageSupportDetail       Page = "support-detail"
	PageSubscribers         Page = "subscribers"
	PageMyProfile           Page = "my-profile"
)

// Route addresses one view. Form selects an inline form on views that
// carry one; FormError is shown inside it.
type Route struct {
	Page      Page
	ID        int64
	Form      string
	FormError string
}

func (r Route) Path() string {
	if r.Page == PageLogin {
		return "/login"
	}

	values := url.Values{}
	if r.ID != 0 {
		values.Set("id", strconv.FormatInt(r.ID, 10))
	}
	if r.Form != "" {
		values.Set("form", r.Form)
	}
	if encoded := values.Encode(); encoded != "" {
		return fmt.Sprintf("/pages/%s?%s", r.Page, encoded)
	}
	return "/pages/" + string(r.Page)
}

type pageDef struct {
	title   string
	parent  Page
	list    bool
	search  bool
	filters []string
	nav     string
	super   bool
}

var pages = map[Page]pageDef{
	PageDashboard:           {title: "Dashboard", nav: "Dashboard"},
	PageHosts:               {title: "Hosts", nav: "Hosts", list: true, search: true},
	PageHostDetail:          {title: "Host Details", parent: PageHosts},
	PageClients:             {title: "Clients", nav: "Clients", list: true, search: true, filters: []string{"is_active"}},
	PageClientDetail:        {title: "Client Details", parent: PageClients},
	PageCars:                {title: "Cars", nav: "Cars", list: true, search: true, filters: []string{"status"}},
	PageCarDetail:           {title: "Car Details", parent: PageCars},
	PageBookings:            {title: "Bookings", nav: "Bookings", list: true, search: true, filters: []string{"status"}},
	PageBookingDetail:       {title: "Booking Details", parent: PageBookings},
	PageWithdrawals:         {title: "Withdrawals", nav: "Withdrawals", list: true, filters: []string{"status"}},
	PagePaymentMethods:      {title: "Payment Methods", nav: "Payment Methods", list: true, search: true, filters: []string{"method_type", "host_id"}},
	PagePaymentMethodDetail: {title: "Payment Method Details", parent: PagePaymentMethods},
	PageFeedback:            {title: "Feedback", nav: "Feedback", list: true, filters: []string{"is_flagged"}},
	PageSupport:             {title: "Support", nav: "Support", list: true, filters: []string{"status"}},
	PageSupportDetail:       {title: "Conversation", parent: PageSupport},
	PageNotifications:       {title: "Notifications", nav: "Notifications"},
	PageSubscribers:         {title: "Subscribers", nav: "Subscribers", list: true, search: true},
	PageAdmins:              {title: "Admins", nav: "Admins", list: true, search: true, filters: []string{"role", "is_active"}, super: true},
	PageAdminDetail:         {title: "Admin Details", parent: PageAdmins},
	PageMyProfile:           {title: "My Profile"},
}

var navOrder = []Page{
	PageDashboard, PageHosts, PageClients, PageCars, PageBookings, PageWithdrawals,
	PagePaymentMethods, PageFeedback, PageSupport, PageNotifications, PageSubscribers, PageAdmins,
}

// ParsePage validates a page name coming from a URL.
func ParsePage(raw string) (Page, bool) {
	page := Page(raw)
	_, ok := pages[page]
	return page, ok
}

func (p Page) IsDetail() bool {
	return pages[p].parent != ""
}

// List returns the list view a detail page belongs to, or p itself.
func (p Page) List() Page {
	if parent := pages[p].parent; parent != "" {
		return parent
	}
	return p
}

func (p Page) isList() bool {
	return pages[p].list
}

// Back is the route the Back button of a detail view leads to.
func Back(r Route) Route {
	return Route{Page: r.Page.List()}
}
