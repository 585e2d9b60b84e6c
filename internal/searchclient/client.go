// Package searchclient implements the remote question search contract:
// given a query, a page number and a page size, return one page of
// results or an error. Several transports are provided; the search
// controller depends only on the Client interface.
package searchclient

import (
	"context"
	"errors"
	"fmt"
	"io"

	"qsearch/internal/config"
	"qsearch/internal/domain"
)

var (
	ErrEmptyQuery       = errors.New("query must not be empty")
	ErrInvalidPage      = errors.New("page and page size must be at least 1")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Client returns one page of questions matching query
type Client interface {
	Search(ctx context.Context, query string, page, pageSize int) (domain.ResultPage, error)
}

// ClientFunc adapts a plain function to the Client interface
type ClientFunc func(ctx context.Context, query string, page, pageSize int) (domain.ResultPage, error)

func (f ClientFunc) Search(ctx context.Context, query string, page, pageSize int) (domain.ResultPage, error) {
	return f(ctx, query, page, pageSize)
}

// searchRequest is the wire form shared by the gRPC and HTTP transports
type searchRequest struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

func validate(query string, page, pageSize int) error {
	if domain.IsBlank(query) {
		return ErrEmptyQuery
	}
	if page < 1 || pageSize < 1 {
		return fmt.Errorf("%w: page=%d pageSize=%d", ErrInvalidPage, page, pageSize)
	}
	return nil
}

// sanitize guarantees non-negative totals on every successful response
func sanitize(p domain.ResultPage) domain.ResultPage {
	if p.TotalResults < 0 {
		p.TotalResults = 0
	}
	if p.TotalPages < 0 {
		p.TotalPages = 0
	}
	return p
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// FromConfig builds the client selected by the backend settings.
// The returned closer releases the underlying connection.
func FromConfig(cfg config.BackendSettings) (Client, io.Closer, error) {
	switch cfg.Kind {
	case config.BackendGRPC:
		c, err := NewGRPCClient(cfg.Address, cfg.Insecure)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	case config.BackendHTTP:
		return NewHTTPClient(cfg.Address, cfg.Timeout()), nopCloser{}, nil
	case config.BackendElastic:
		c, err := NewElasticClient(ElasticOptions{
			Addresses: []string{cfg.Address},
			Index:     cfg.Index,
			Username:  cfg.Username,
			Password:  cfg.Password,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Kind)
	}
}
