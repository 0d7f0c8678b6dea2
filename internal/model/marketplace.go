package model

type Host struct {
	ID                  int64  `json:"id"`
	FullName            string `json:"full_name"`
	Email               string `json:"email"`
	MobileNumber        string `json:"mobile_number,omitempty"`
	IDNumber            string `json:"id_number,omitempty"`
	Bio                 string `json:"bio,omitempty"`
	IsActive            bool   `json:"is_active"`
	CarsCount           int    `json:"cars_count"`
	PaymentMethodsCount int    `json:"payment_methods_count"`
	FeedbacksCount      int    `json:"feedbacks_count"`
	CreatedAt           string `json:"created_at,omitempty"`
	UpdatedAt           string `json:"updated_at,omitempty"`
}

type HostPage struct {
	Hosts []Host `json:"hosts"`
	PageMeta
}

type Client struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number,omitempty"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

type ClientPage struct {
	Items []Client `json:"items"`
	PageMeta
}

const (
	CarAwaiting = "awaiting"
	CarVerified = "verified"
	CarDenied   = "denied"
)

type Car struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Model              string   `json:"model"`
	Year               int      `json:"year"`
	BodyType           string   `json:"body_type,omitempty"`
	Color              string   `json:"color,omitempty"`
	Seats              int      `json:"seats,omitempty"`
	FuelType           string   `json:"fuel_type,omitempty"`
	Transmission       string   `json:"transmission,omitempty"`
	Mileage            int      `json:"mileage,omitempty"`
	DailyRate          float64  `json:"daily_rate,omitempty"`
	WeeklyRate         float64  `json:"weekly_rate,omitempty"`
	MonthlyRate        float64  `json:"monthly_rate,omitempty"`
	MinRentalDays      int      `json:"min_rental_days,omitempty"`
	MaxRentalDays      int      `json:"max_rental_days,omitempty"`
	MinAgeRequirement  int      `json:"min_age_requirement,omitempty"`
	LocationName       string   `json:"location_name,omitempty"`
	Latitude           float64  `json:"latitude,omitempty"`
	Longitude          float64  `json:"longitude,omitempty"`
	Description        string   `json:"description,omitempty"`
	Features           []string `json:"features,omitempty"`
	Rules              string   `json:"rules,omitempty"`
	VerificationStatus string   `json:"verification_status"`
	RejectionReason    string   `json:"rejection_reason,omitempty"`
	IsHidden           bool     `json:"is_hidden"`
	IsComplete         bool     `json:"is_complete"`
	HostID             int64    `json:"host_id,omitempty"`
	HostName           string   `json:"host_name,omitempty"`
	HostEmail          string   `json:"host_email,omitempty"`
	CreatedAt          string   `json:"created_at,omitempty"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

// DisplayName is the label used in confirmation prompts and titles.
func (c Car) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Model != "":
		return c.Model
	default:
		return "Car"
	}
}

type CarPage struct {
	Cars []Car `json:"cars"`
	PageMeta
}

type CarStatusRequest struct {
	VerificationStatus string `json:"verification_status"`
	RejectionReason    string `json:"rejection_reason,omitempty"`
}

type RejectCarRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

type Feedback struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	HostID    int64  `json:"host_id,omitempty"`
	HostName  string `json:"host_name,omitempty"`
	IsFlagged bool   `json:"is_flagged"`
	CreatedAt string `json:"created_at,omitempty"`
}

type FeedbackPage struct {
	Feedbacks []Feedback `json:"feedbacks"`
	PageMeta
}

const (
	MethodMpesa      = "mpesa"
	MethodVisa       = "visa"
	MethodMastercard = "mastercard"
)

type PaymentMethod struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MethodType   string `json:"method_type"`
	IsDefault    bool   `json:"is_default"`
	MpesaNumber  string `json:"mpesa_number,omitempty"`
	CardLastFour string `json:"card_last_four,omitempty"`
	CardType     string `json:"card_type,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	HostID       int64  `json:"host_id,omitempty"`
	HostName     string `json:"host_name,omitempty"`
	HostEmail    string `json:"host_email,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// IsCard reports whether the method carries card details.
func (p PaymentMethod) IsCard() bool {
	return p.MethodType == MethodVisa || p.MethodType == MethodMastercard
}

type PaymentMethodPage struct {
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	PageMeta
}

type NotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	UserID  int64  `json:"user_id,omitempty"`
	// UserType is "host" or "client" for single-recipient sends.
	UserType string `json:"user_type,omitempty"`
}
