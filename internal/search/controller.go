// Package search owns the interactive search state: the query text, the
// current page, a per-(query, page) result cache and the loading flag.
// It decides when to call the remote search service, debounces typed
// input and drops responses that no longer match what the user is
// looking at.
//
// A Controller is single-threaded. Every method, and every callback it
// schedules, must run on the goroutine that drives its Executor. Calls
// to the search service happen on their own goroutines and hand their
// results back through the Executor.
package search

import (
	"context"
	"iter"
	"log"
	"time"

	"github.com/google/uuid"

	"qsearch/internal/cache"
	"qsearch/internal/domain"
	"qsearch/internal/eventbus"
	"qsearch/internal/searchclient"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultPageSize = 10
)

// State is a snapshot of everything the view renders
type State struct {
	Query        string
	Page         int
	PageSize     int
	Loading      bool
	Items        []domain.Question
	TotalResults int
	TotalPages   int
	// Err is the last failure for the displayed query/page, if any
	Err error
}

// Key is the cache key for the current query and page
func (s State) Key() domain.PageKey {
	return domain.PageKey{Query: s.Query, Page: s.Page}
}

// HasPrev reports whether a previous page exists
func (s State) HasPrev() bool {
	return s.Page > 1
}

// HasNext reports whether a next page exists
func (s State) HasNext() bool {
	return s.Page < s.TotalPages
}

// PageWindow yields the page numbers to show around the current page
func (s State) PageWindow(windowSize int) iter.Seq[int] {
	return PageWindow(s.Page, s.TotalPages, windowSize)
}

// Options configures a Controller
type Options struct {
	Client   searchclient.Client
	Executor Executor

	// PageSize is fixed for the controller's lifetime (default 10)
	PageSize int
	// Debounce delays typed queries (default 300ms)
	Debounce time.Duration
	// Timeout bounds each call to the search service; 0 means no limit
	Timeout time.Duration

	Cache     cache.ResultCache // default: unbounded
	Scheduler Scheduler         // default: SystemScheduler
	Bus       eventbus.EventBus // optional
}

type observer struct {
	id uint64
	fn func(State)
}

// Controller mediates between user input and the search service
type Controller struct {
	client   searchclient.Client
	exec     Executor
	sched    Scheduler
	cache    cache.ResultCache
	bus      eventbus.EventBus
	debounce time.Duration
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	state State

	pending     Timer
	debounceSeq uint64
	inflight    map[domain.PageKey]string // key -> request id

	observers []observer
	nextObsID uint64
	closed    bool
}

// NewController creates a controller with an empty query on page 1
func NewController(opts Options) (*Controller, error) {
	if opts.Client == nil {
		return nil, ErrNoClient
	}
	if opts.Executor == nil {
		return nil, ErrNoExecutor
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewUnbounded()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = SystemScheduler{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		client:   opts.Client,
		exec:     opts.Executor,
		sched:    opts.Scheduler,
		cache:    opts.Cache,
		bus:      opts.Bus,
		debounce: opts.Debounce,
		timeout:  opts.Timeout,
		ctx:      ctx,
		cancel:   cancel,
		state: State{
			Page:     1,
			PageSize: opts.PageSize,
		},
		inflight: make(map[domain.PageKey]string),
	}, nil
}

// State returns a copy of the current state
func (c *Controller) State() State {
	s := c.state
	if s.Items != nil {
		s.Items = append([]domain.Question(nil), s.Items...)
	}
	return s
}

// PageWindow yields the page numbers to show around the current page
func (c *Controller) PageWindow(windowSize int) iter.Seq[int] {
	return c.state.PageWindow(windowSize)
}

// Subscribe registers fn to be called with a fresh snapshot after every
// state transition. fn runs on the controller's goroutine.
// Returns an unsubscribe function.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.nextObsID++
	id := c.nextObsID
	c.observers = append(c.observers, observer{id: id, fn: fn})

	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// SetQuery replaces the query, resets to page 1 and schedules a
// debounced search
func (c *Controller) SetQuery(query string) {
	if c.closed {
		return
	}
	c.state.Query = query
	c.state.Page = 1
	c.state.Err = nil
	c.syncLoading()
	c.notify()

	c.RequestSearch(false)
}

// SetPage moves to page and searches immediately. Out of range pages
// are not rejected: pages past the end go to the service, which answers
// with an empty page, and pages below 1 show an empty page without a call.
func (c *Controller) SetPage(page int) {
	if c.closed {
		return
	}
	c.state.Page = page
	c.state.Err = nil
	c.syncLoading()
	c.notify()

	c.RequestSearch(true)
}

// RequestSearch searches for the current query and page. An immediate
// request cancels any pending debounced one; a non-immediate request
// replaces the pending one and fires after the debounce interval.
func (c *Controller) RequestSearch(immediate bool) {
	if c.closed {
		return
	}
	if !immediate {
		c.scheduleDebounced()
		return
	}
	c.cancelPending()
	c.search()
}

// DebouncePending reports whether a debounced search is waiting to fire
func (c *Controller) DebouncePending() bool {
	return c.pending != nil
}

// Close cancels the pending debounce and the context of in-flight
// requests. Responses that still arrive are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cancelPending()
	c.cancel()
}

func (c *Controller) scheduleDebounced() {
	c.cancelPending()

	c.debounceSeq++
	seq := c.debounceSeq
	c.pending = c.sched.AfterFunc(c.debounce, func() {
		c.exec.Post(func() {
			// Cancelled or superseded after the timer had already fired
			if c.closed || c.pending == nil || seq != c.debounceSeq {
				return
			}
			c.pending = nil
			c.search()
		})
	})
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	c.pending.Stop()
	c.pending = nil
}

func (c *Controller) search() {
	key := c.state.Key()

	if domain.IsBlank(key.Query) {
		c.state.Items = nil
		c.state.TotalResults = 0
		c.state.TotalPages = 0
		c.state.Err = nil
		c.syncLoading()
		c.notify()
		return
	}

	// No service accepts a page below 1; keep the totals so navigation
	// can find its way back
	if key.Page < 1 {
		c.state.Items = nil
		c.state.Err = nil
		c.syncLoading()
		c.notify()
		return
	}

	if page, ok := c.cache.Get(key); ok {
		c.apply(page)
		c.syncLoading()
		c.publish(eventbus.CacheHitEvent{Key: key})
		c.notify()
		return
	}

	if reqID, ok := c.inflight[key]; ok {
		log.Printf("search: %s already in flight (request %s)", key, reqID)
		return
	}

	reqID := uuid.NewString()
	c.inflight[key] = reqID
	c.state.Loading = true
	c.state.Err = nil
	c.notify()
	c.publish(eventbus.SearchStartedEvent{RequestID: reqID, Key: key, PageSize: c.state.PageSize})

	go c.fetch(c.ctx, reqID, key, c.state.PageSize)
}

// fetch runs off the controller goroutine and posts the outcome back
func (c *Controller) fetch(ctx context.Context, reqID string, key domain.PageKey, pageSize int) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	page, err := c.client.Search(ctx, key.Query, key.Page, pageSize)
	c.exec.Post(func() {
		c.complete(reqID, key, page, err)
	})
}

func (c *Controller) complete(reqID string, key domain.PageKey, page domain.ResultPage, err error) {
	if c.closed {
		return
	}
	delete(c.inflight, key)
	c.syncLoading()
	current := c.state.Key()

	if err != nil {
		failure := &SearchFailedError{Key: key, RequestID: reqID, Err: err}
		log.Printf("search: %v", failure)
		if key == current {
			c.state.Err = failure
		}
		c.publish(eventbus.SearchFailedEvent{RequestID: reqID, Key: key, Err: failure})
		c.notify()
		return
	}

	// Cache regardless of staleness; only the display is guarded
	c.cache.Put(key, page)

	if key != current {
		log.Printf("search: dropping stale response for %s, now showing %s", key, current)
		c.publish(eventbus.StaleResponseDroppedEvent{RequestID: reqID, Key: key, Current: current})
		c.notify()
		return
	}

	c.apply(page)
	c.publish(eventbus.SearchCompletedEvent{
		RequestID:    reqID,
		Key:          key,
		ItemCount:    len(page.Items),
		TotalResults: page.TotalResults,
		TotalPages:   page.TotalPages,
	})
	c.notify()
}

// syncLoading sets Loading when the displayed key has a fetch in flight.
// Requests for keys the user has left do not count.
func (c *Controller) syncLoading() {
	_, c.state.Loading = c.inflight[c.state.Key()]
}

func (c *Controller) apply(page domain.ResultPage) {
	page = page.Clone()
	c.state.Items = page.Items
	c.state.TotalResults = page.TotalResults
	c.state.TotalPages = page.TotalPages
	c.state.Err = nil
}

func (c *Controller) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	snapshot := c.State()
	observers := append([]observer(nil), c.observers...)
	for _, o := range observers {
		o.fn(snapshot)
	}
}
