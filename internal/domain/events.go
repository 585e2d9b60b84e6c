package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted        EventType = "SearchStarted"
	EventSearchCompleted      EventType = "SearchCompleted"
	EventSearchFailed         EventType = "SearchFailed"
	EventStaleResponseDropped EventType = "StaleResponseDropped"
	EventCacheHit             EventType = "CacheHit"
	EventError                EventType = "Error"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a request is sent to the search service
type SearchStartedEvent struct {
	RequestID string
	Key       PageKey
	PageSize  int
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a response is applied to the view
type SearchCompletedEvent struct {
	RequestID    string
	Key          PageKey
	ItemCount    int
	TotalResults int
	TotalPages   int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the search service returns an error
type SearchFailedEvent struct {
	RequestID string
	Key       PageKey
	Err       error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// StaleResponseDroppedEvent is emitted when a response arrives for a
// query/page the user has already moved away from
type StaleResponseDroppedEvent struct {
	RequestID string
	Key       PageKey
	Current   PageKey
}

func (e StaleResponseDroppedEvent) Type() EventType { return EventStaleResponseDropped }

// CacheHitEvent is emitted when a page is served from the cache
type CacheHitEvent struct {
	Key PageKey
}

func (e CacheHitEvent) Type() EventType { return EventCacheHit }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	Backend string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
