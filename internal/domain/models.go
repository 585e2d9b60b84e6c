package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionID accepts both string and numeric ids on the wire
type QuestionID string

func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = QuestionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question id must be a string or number: %w", err)
	}
	*id = QuestionID(n.String())
	return nil
}

// Question is a single record returned by the search service
type Question struct {
	ID    QuestionID `json:"id"`
	Title string     `json:"title"`
	Type  string     `json:"type"`
}

// ResultPage is one page of search results plus pagination metadata
type ResultPage struct {
	Items        []Question `json:"questions"`
	TotalResults int        `json:"totalResults"`
	TotalPages   int        `json:"totalPages"`
}

// Clone returns a copy that does not share the item slice
func (p ResultPage) Clone() ResultPage {
	out := p
	if p.Items != nil {
		out.Items = make([]Question, len(p.Items))
		copy(out.Items, p.Items)
	}
	return out
}

// PageKey identifies a cached result page
type PageKey struct {
	Query string
	Page  int
}

func (k PageKey) String() string {
	return fmt.Sprintf("%q#%d", k.Query, k.Page)
}

// IsBlank reports whether the query is empty once trimmed
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}
