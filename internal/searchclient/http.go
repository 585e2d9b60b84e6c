package searchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"qsearch/internal/domain"
)

// SearchPath is the endpoint queried by HTTPClient
const SearchPath = "/api/questions/search"

// HTTPClient queries a JSON search endpoint:
// GET {base}/api/questions/search?query=..&page=..&pageSize=..
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Search(ctx context.Context, query string, page, pageSize int) (domain.ResultPage, error) {
	if err := validate(query, page, pageSize); err != nil {
		return domain.ResultPage{}, err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+SearchPath+"?"+params.Encode(), nil)
	if err != nil {
		return domain.ResultPage{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.ResultPage{}, fmt.Errorf("http search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.ResultPage{}, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out domain.ResultPage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.ResultPage{}, fmt.Errorf("decode response: %w", err)
	}

	return sanitize(out), nil
}
