//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

type backendRequest struct {
	Query string
	Page  int
}

// questionBackend is an in-process search service speaking the HTTP
// transport's JSON contract
type questionBackend struct {
	srv *httptest.Server

	mu       sync.Mutex
	requests []backendRequest
	totals   map[string]int           // query -> total results
	delays   map[string]time.Duration // query -> response delay
	failing  map[string]bool
}

func newQuestionBackend(t *testing.T) *questionBackend {
	t.Helper()
	b := &questionBackend{
		totals:  map[string]int{},
		delays:  map[string]time.Duration{},
		failing: map[string]bool{},
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *questionBackend) URL() string { return b.srv.URL }

func (b *questionBackend) SetTotal(query string, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.totals[query] = total
}

func (b *questionBackend) SetDelay(query string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delays[query] = d
}

func (b *questionBackend) SetFailing(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing[query] = true
}

func (b *questionBackend) Requests() []backendRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]backendRequest(nil), b.requests...)
}

func (b *questionBackend) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/questions/search" {
		http.NotFound(w, r)
		return
	}
	query := r.URL.Query().Get("query")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	b.mu.Lock()
	b.requests = append(b.requests, backendRequest{Query: query, Page: page})
	total, ok := b.totals[query]
	delay := b.delays[query]
	failing := b.failing[query]
	b.mu.Unlock()

	if !ok {
		total = 1
	}
	time.Sleep(delay)

	if failing {
		http.Error(w, "index offline", http.StatusServiceUnavailable)
		return
	}

	type question struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
		Type  string `json:"type"`
	}
	questions := []question{}
	for i := (page - 1) * pageSize; i < min(total, page*pageSize); i++ {
		questions = append(questions, question{
			ID:    i + 1,
			Title: fmt.Sprintf("%s question %d", query, i+1),
			Type:  "faq",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"questions":    questions,
		"totalResults": total,
		"totalPages":   (total + pageSize - 1) / pageSize,
	})
}
