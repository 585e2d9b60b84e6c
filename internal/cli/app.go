package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"qsearch/internal/cache"
	"qsearch/internal/config"
	"qsearch/internal/eventbus"
	"qsearch/internal/search"
	"qsearch/internal/searchclient"
)

// app holds everything a command needs to run searches
type app struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	client  searchclient.Client
	closers []io.Closer
}

func configService(opts *options) config.ConfigService {
	if opts.configPath != "" {
		return config.NewConfigServiceAt(opts.configPath)
	}
	return config.NewConfigService()
}

// newApp loads config, redirects logging and connects to the backend
func newApp(opts *options) (*app, error) {
	a := &app{bus: eventbus.New()}
	attachEventLog(a.bus)

	cfg, err := config.WithBus(configService(opts), a.bus).Load()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	if logFile, err := setupLogging(cfg.Log.File); err != nil {
		log.Printf("Could not open log file: %v", err)
	} else if logFile != nil {
		a.closers = append(a.closers, logFile)
	}

	client, closer, err := searchclient.FromConfig(cfg.Backend)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connecting to %s backend: %w", cfg.Backend.Kind, err)
	}
	a.client = client
	a.closers = append(a.closers, closer)

	log.Printf("config: %s backend at %s", cfg.Backend.Kind, cfg.Backend.Address)
	return a, nil
}

// newController builds a search controller that posts to exec
func (a *app) newController(exec search.Executor) (*search.Controller, error) {
	return search.NewController(search.Options{
		Client:   a.client,
		Executor: exec,
		PageSize: a.cfg.Search.PageSize,
		Debounce: a.cfg.Search.Debounce(),
		Timeout:  a.cfg.Backend.Timeout(),
		Cache:    cache.New(a.cfg.Search.CacheSize),
		Bus:      a.bus,
	})
}

// Close releases the backend connection and the log file
func (a *app) Close() {
	a.bus.Close()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}
	log.SetOutput(os.Stderr)
}

// setupLogging sends the standard logger to path; the TUI owns the terminal
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	log.SetOutput(logFile)
	return logFile, nil
}

// attachEventLog records search activity published on the bus
func attachEventLog(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventSearchStarted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchStartedEvent); ok {
			log.Printf("search: request %s started for %s", event.RequestID, event.Key)
		}
	})
	bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchCompletedEvent); ok {
			log.Printf("search: request %s for %s returned %d of %d results (%d pages)",
				event.RequestID, event.Key, event.ItemCount, event.TotalResults, event.TotalPages)
		}
	})
	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Printf("search: request %s failed: %v", event.RequestID, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventStaleResponseDropped, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.StaleResponseDroppedEvent); ok {
			log.Printf("search: request %s for %s arrived after the view moved to %s", event.RequestID, event.Key, event.Current)
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("error: %s: %v", event.Message, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("config: loaded %s", event.Path)
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Printf("config: saved %s", event.Path)
		}
	})
}
