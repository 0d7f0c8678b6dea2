package model

type Booking struct {
	ID          int64   `json:"id"`
	BookingID   string  `json:"booking_id,omitempty"`
	Status      string  `json:"status"`
	CarID       int64   `json:"car_id,omitempty"`
	CarName     string  `json:"car_name,omitempty"`
	ClientID    int64   `json:"client_id,omitempty"`
	ClientName  string  `json:"client_name,omitempty"`
	ClientEmail string  `json:"client_email,omitempty"`
	HostID      int64   `json:"host_id,omitempty"`
	HostName    string  `json:"host_name,omitempty"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	TotalPrice  float64 `json:"total_price,omitempty"`
	Pickup      string  `json:"pickup_location,omitempty"`
	Dropoff     string  `json:"dropoff_location,omitempty"`
	CancelNote  string  `json:"cancellation_reason,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type BookingPage struct {
	Bookings []Booking `json:"bookings"`
	PageMeta
}

type BookingStats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Confirmed int     `json:"confirmed"`
	Active    int     `json:"active"`
	Completed int     `json:"completed"`
	Cancelled int     `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}

type Withdrawal struct {
	ID            int64   `json:"id"`
	HostID        int64   `json:"host_id,omitempty"`
	HostName      string  `json:"host_name,omitempty"`
	HostEmail     string  `json:"host_email,omitempty"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	AdminNote     string  `json:"admin_note,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	ProcessedAt   string  `json:"processed_at,omitempty"`
}

type WithdrawalPage struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
	PageMeta
}

type WithdrawalStatusRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note,omitempty"`
}

type SupportMessage struct {
	ID         int64  `json:"id"`
	SenderType string `json:"sender_type"`
	SenderName string `json:"sender_name,omitempty"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type Conversation struct {
	ID        int64            `json:"id"`
	Subject   string           `json:"subject"`
	Status    string           `json:"status"`
	UserType  string           `json:"user_type,omitempty"`
	UserName  string           `json:"user_name,omitempty"`
	UserEmail string           `json:"user_email,omitempty"`
	Messages  []SupportMessage `json:"messages,omitempty"`
	CreatedAt string           `json:"created_at,omitempty"`
	UpdatedAt string           `json:"updated_at,omitempty"`
}

func (c Conversation) IsClosed() bool {
	return c.Status == "closed"
}

type ConversationPage struct {
	Conversations []Conversation `json:"conversations"`
	PageMeta
}

type RespondRequest struct {
	Message string `json:"message"`
}

type Subscriber struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	IsActive     bool   `json:"is_active"`
	SubscribedAt string `json:"subscribed_at,omitempty"`
}

type SubscriberPage struct {
	Subscribers []Subscriber `json:"subscribers"`
	PageMeta
}

type NewsletterRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}
