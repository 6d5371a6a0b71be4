package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource yields the current bearer token, or "" when unauthenticated.
type TokenSource interface {
	Token() string
}

// Service maps domain operations onto the backend REST contract. Operations
// marked as authenticated attach "Authorization: Bearer <token>" whenever the
// token source yields one; register and login never do.
type Service struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	cache      *ClientCache
}

const (
	DefaultBaseURL  = "http://localhost:3000"
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 30 * time.Second
)

func NewService(config Config, tokens TokenSource) *Service {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}

	return &Service{
		httpClient: &http.Client{Timeout: config.Timeout},
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		tokens:     tokens,
		cache:      NewClientCache(config.CacheTTL),
	}
}

func (s *Service) Register(name, email, password string) error {
	body := registerRequest{Name: name, Email: email, Password: password}
	return s.do(http.MethodPost, "/auth/register", body, false, nil)
}

func (s *Service) Login(email, password string) (string, *User, error) {
	body := loginRequest{Email: email, Password: password}

	var resp loginResponse
	if err := s.do(http.MethodPost, "/auth/login", body, false, &resp); err != nil {
		return "", nil, err
	}

	return resp.Token, &resp.User, nil
}

func (s *Service) ListClients() ([]Client, error) {
	var resp listClientsResponse
	if err := s.do(http.MethodGet, "/clients", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

// ListClientsCached serves the collection from the cache when it is still
// fresh, otherwise fetches and repopulates it.
func (s *Service) ListClientsCached() ([]Client, error) {
	if cached, found := s.cache.Get(); found {
		return cached, nil
	}

	clients, err := s.ListClients()
	if err != nil {
		return nil, err
	}

	s.cache.Set(clients)
	return clients, nil
}

func (s *Service) CreateClient(payload ClientPayload) error {
	if err := s.do(http.MethodPost, "/clients", payload, true, nil); err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

func (s *Service) UpdateClient(id string, payload ClientPayload) error {
	if err := s.do(http.MethodPut, "/clients/"+id, payload, true, nil); err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

func (s *Service) DeleteClient(id string) error {
	if err := s.do(http.MethodDelete, "/clients/"+id, nil, true, nil); err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

func (s *Service) InvalidateClients() {
	s.cache.Invalidate()
}

func (s *Service) do(method, path string, body any, auth bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if auth && s.tokens != nil {
		if token := s.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return ClassifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, decodeBackendMessage(resp.Body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return NewDecodeError("failed to decode response", err)
		}
	}

	return nil
}

func decodeBackendMessage(body io.Reader) string {
	var errResp errorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return ""
	}
	if errResp.Message != "" {
		return errResp.Message
	}
	return errResp.Error
}
