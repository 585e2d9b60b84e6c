package searchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	elastic "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"qsearch/internal/domain"
)

// ElasticOptions configures ElasticClient
type ElasticOptions struct {
	Addresses []string
	Index     string
	Username  string
	Password  string
	Transport http.RoundTripper
}

// ElasticClient searches question documents stored in Elasticsearch.
// Documents carry "title" and "type" fields; the document id is the
// question id.
type ElasticClient struct {
	client *elastic.Client
	index  string
}

func NewElasticClient(opts ElasticOptions) (*ElasticClient, error) {
	es, err := elastic.NewClient(elastic.Config{
		Addresses: opts.Addresses,
		Username:  opts.Username,
		Password:  opts.Password,
		Transport: opts.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elastic client: %w", err)
	}
	return &ElasticClient{client: es, index: opts.Index}, nil
}

type elasticSearch struct {
	From           int          `json:"from"`
	Size           int          `json:"size"`
	TrackTotalHits bool         `json:"track_total_hits"`
	Query          elasticQuery `json:"query"`
}

type elasticQuery struct {
	MultiMatch elasticMultiMatchQuery `json:"multi_match"`
}

type elasticMultiMatchQuery struct {
	Query  string   `json:"query"`
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
}

type elasticResponse struct {
	Hits elasticHitsWrapper `json:"hits"`
}

type elasticHitsWrapper struct {
	Total elasticTotal `json:"total"`
	Hits  []elasticHit `json:"hits"`
}

type elasticTotal struct {
	Value int `json:"value"`
}

type elasticHit struct {
	ID     string        `json:"_id"`
	Source elasticSource `json:"_source"`
}

type elasticSource struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

func (c *ElasticClient) Search(ctx context.Context, query string, page, pageSize int) (domain.ResultPage, error) {
	if err := validate(query, page, pageSize); err != nil {
		return domain.ResultPage{}, err
	}

	body := elasticSearch{
		From:           (page - 1) * pageSize,
		Size:           pageSize,
		TrackTotalHits: true,
		Query: elasticQuery{MultiMatch: elasticMultiMatchQuery{
			Query: query,
			Type:  "bool_prefix",
			Fields: []string{
				"title",
				"title._2gram",
				"title._3gram",
			},
		}},
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return domain.ResultPage{}, err
	}

	resp, err := checkResponse(c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(bytes.NewReader(bs)),
	))
	if err != nil {
		return domain.ResultPage{}, fmt.Errorf("elastic search: %w", err)
	}
	defer resp.Body.Close()

	var er elasticResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return domain.ResultPage{}, fmt.Errorf("elastic search: decode: %w", err)
	}

	out := domain.ResultPage{
		Items:        make([]domain.Question, 0, len(er.Hits.Hits)),
		TotalResults: er.Hits.Total.Value,
		TotalPages:   (er.Hits.Total.Value + pageSize - 1) / pageSize,
	}
	for _, hit := range er.Hits.Hits {
		out.Items = append(out.Items, domain.Question{
			ID:    domain.QuestionID(hit.ID),
			Title: hit.Source.Title,
			Type:  hit.Source.Type,
		})
	}

	return sanitize(out), nil
}

func checkResponse(resp *esapi.Response, err error) (*esapi.Response, error) {
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrUnexpectedStatus)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		bs, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if err != nil {
			log.Printf("elastic: couldn't read error body: %v", err)
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, string(bs))
	}

	return resp, nil
}
