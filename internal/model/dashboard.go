package model

type DashboardStats struct {
	TotalHosts               int `json:"total_hosts"`
	ActiveHosts              int `json:"active_hosts"`
	InactiveHosts            int `json:"inactive_hosts"`
	TotalClients             int `json:"total_clients"`
	ActiveClients            int `json:"active_clients"`
	InactiveClients          int `json:"inactive_clients"`
	TotalCars                int `json:"total_cars"`
	VisibleCars              int `json:"visible_cars"`
	HiddenCars               int `json:"hidden_cars"`
	CarsAwaitingVerification int `json:"cars_awaiting_verification"`
	VerifiedCars             int `json:"verified_cars"`
	RejectedCars             int `json:"rejected_cars"`
}

type Activity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

type ActivityFeed struct {
	Activities []Activity `json:"activities"`
}

type VerificationQueueStats struct {
	Awaiting int `json:"awaiting"`
	Verified int `json:"verified"`
	Denied   int `json:"denied"`
}

type RevenueStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	Currency       string  `json:"currency,omitempty"`
}
