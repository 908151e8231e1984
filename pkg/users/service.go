package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Adda-Baaj/userdir/internal/domain"
	"github.com/Adda-Baaj/userdir/pkg/httpclient"
)

// Service reads user records from the remote directory.
// It holds only configuration fixed at construction and is safe for
// concurrent use.
type Service struct {
	baseURL string
	client  httpclient.Client
	codec   Codec
	headers map[string]string
}

// Option customizes a Service at construction time.
type Option func(*Service)

// WithCodec replaces the default JSON codec.
func WithCodec(c Codec) Option {
	return func(s *Service) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithHeaders sets headers sent with every request (skips empty values).
func WithHeaders(headers map[string]string) Option {
	return func(s *Service) {
		for k, v := range headers {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k == "" || v == "" {
				continue
			}
			s.headers[k] = v
		}
	}
}

// New builds a Service for baseURL using client as transport.
func New(baseURL string, client httpclient.Client, opts ...Option) (*Service, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base url is empty")
	}
	if client == nil {
		return nil, errors.New("http client must not be nil")
	}

	s := &Service{
		baseURL: baseURL,
		client:  client,
		codec:   JSONCodec{},
		headers: map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (s *Service) BaseURL() string { return s.baseURL }

// FetchUser retrieves the user with the given id.
// The returned error, when non-nil, is always an APIError.
func (s *Service) FetchUser(ctx context.Context, id uint32) (domain.User, error) {
	url := fmt.Sprintf("%s/users/%d", s.baseURL, id)

	resp, err := s.client.Get(ctx, url, s.headers)
	if err != nil {
		return domain.User{}, NewNetworkError(err.Error())
	}

	switch code := resp.StatusCode(); code {
	case http.StatusOK:
		var user domain.User
		if err := s.decode(resp.Body(), &user); err != nil {
			return domain.User{}, err
		}
		return user, nil
	case http.StatusNotFound:
		return domain.User{}, ErrNotFound
	default:
		return domain.User{}, NewServerError(uint16(code))
	}
}

// FetchAllUsers retrieves every user and keeps only the active ones,
// preserving their order. The returned error, when non-nil, is always an
// APIError.
//
// The response status is not inspected: any body is decoded as a list,
// so an error status surfaces as a ParseError (or as data, if the error
// body happens to be a JSON list). This differs from FetchUser and is
// kept as the remote contract is observed today.
func (s *Service) FetchAllUsers(ctx context.Context) ([]domain.User, error) {
	url := fmt.Sprintf("%s/users", s.baseURL)

	resp, err := s.client.Get(ctx, url, s.headers)
	if err != nil {
		return nil, NewNetworkError(err.Error())
	}

	var all []domain.User
	if err := s.decode(resp.Body(), &all); err != nil {
		return nil, err
	}
	return activeOnly(all), nil
}

func (s *Service) decode(body []byte, v any) error {
	if err := s.codec.Decode(body, v); err != nil {
		return NewParseError(fmt.Sprintf("%v (body: %s)", err, bodySummary(body)))
	}
	return nil
}

// activeOnly returns the active users of all in their original order.
func activeOnly(all []domain.User) []domain.User {
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out
}
