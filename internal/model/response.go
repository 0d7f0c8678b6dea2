package model

import "encoding/json"

// PageMeta is the pagination block list endpoints return next to their records.
type PageMeta struct {
	Total int `json:"total"`
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
	Page  int `json:"page,omitempty"`
}

// MessageResponse is the body mutation endpoints answer with.
type MessageResponse struct {
	Message string `json:"message"`
}

// APIResponse is the envelope the console itself uses for JSON replies
// (health, rate limiting, panics).
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorBody is the backend's error shape. Detail is either a string or a
// validation array of {msg} objects.
type ErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}
