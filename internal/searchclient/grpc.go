package searchclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"qsearch/internal/domain"
)

// SearchQuestionsMethod is the full gRPC method name of the search call
const SearchQuestionsMethod = "/questions.QuestionService/SearchQuestions"

// JSONCodec encodes gRPC messages as JSON so no generated stubs are needed
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSONCodec) Name() string { return "json" }

// GRPCClient calls the question service over gRPC
type GRPCClient struct {
	conn grpc.ClientConnInterface
	// closer is nil when the connection is owned by the caller
	closer interface{ Close() error }
}

// NewGRPCClient dials host. A host without a port is treated as a TLS
// endpoint on 443; useInsecure disables TLS for host:port targets.
func NewGRPCClient(host string, useInsecure bool) (*GRPCClient, error) {
	secure := !useInsecure
	if !strings.Contains(host, ":") {
		host = fmt.Sprintf("%s:%d", host, 443)
		secure = true
	}

	var opts []grpc.DialOption
	if secure {
		systemRoots, err := x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("failed to get system certs: %w", err)
		}
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{
			RootCAs: systemRoots,
		})))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	conn, err := grpc.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial '%v': %w", host, err)
	}

	return &GRPCClient{conn: conn, closer: conn}, nil
}

// NewGRPCClientFromConn wraps an existing connection
func NewGRPCClientFromConn(conn grpc.ClientConnInterface) *GRPCClient {
	return &GRPCClient{conn: conn}
}

func (c *GRPCClient) Search(ctx context.Context, query string, page, pageSize int) (domain.ResultPage, error) {
	if err := validate(query, page, pageSize); err != nil {
		return domain.ResultPage{}, err
	}

	req := &searchRequest{Query: query, Page: page, PageSize: pageSize}
	var resp domain.ResultPage
	if err := c.conn.Invoke(ctx, SearchQuestionsMethod, req, &resp, grpc.ForceCodec(JSONCodec{})); err != nil {
		return domain.ResultPage{}, fmt.Errorf("grpc search: %w", err)
	}

	return sanitize(resp), nil
}

// Close releases the connection if this client opened it
func (c *GRPCClient) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
