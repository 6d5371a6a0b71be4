package api

import (
	"sync"
	"time"
)

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client is the managed business entity shown in the dashboard. Phone is
// stored in its digits-only canonical form; masking is presentation only.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// User is the authenticated profile returned by the backend on login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ClientPayload is the request body for client create/update calls.
type ClientPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type listClientsResponse struct {
	Clients []Client `json:"clients"`
}

// errorResponse covers both message shapes the backend uses for failures.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ClientCache holds the most recent full client collection. The cache is
// read-through and possibly stale: any mutation invalidates it so the next
// read refetches.
type ClientCache struct {
	mu        sync.RWMutex
	clients   []Client
	fetchedAt time.Time
	valid     bool
	ttl       time.Duration
}

type ErrorType string

const (
	ErrNetworkConnection ErrorType = "network_connection"
	ErrTimeout           ErrorType = "timeout"
	ErrUnauthorized      ErrorType = "unauthorized"
	ErrBadRequest        ErrorType = "bad_request"
	ErrNotFound          ErrorType = "not_found"
	ErrServer            ErrorType = "server"
	ErrDecode            ErrorType = "decode"
)

// APIError is the single error shape every Service call returns on failure.
// BackendMessage carries the backend-provided message when the error body
// decoded; callers fall back to their own fixed string when it is empty.
type APIError struct {
	Type           ErrorType
	Message        string
	StatusCode     int
	BackendMessage string
	Cause          error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
