package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"qsearch/internal/search"
)

// ProgramExecutor runs controller work inside the Bubble Tea update loop.
// Post queues the function and wakes a forwarder, which sends the
// program a drainMsg; Update then runs everything queued.
type ProgramExecutor struct {
	queue *search.Loop
	wake  chan struct{}
}

// NewProgramExecutor creates an executor with nothing attached
func NewProgramExecutor() *ProgramExecutor {
	return &ProgramExecutor{
		queue: search.NewLoop(),
		wake:  make(chan struct{}, 1),
	}
}

// Post implements search.Executor
func (e *ProgramExecutor) Post(fn func()) {
	e.queue.Post(fn)
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Drain runs the queued functions. Call it from the update loop only.
func (e *ProgramExecutor) Drain() int {
	return e.queue.RunPending()
}

// Forward delivers wake-ups to p until ctx is done
func (e *ProgramExecutor) Forward(ctx context.Context, p *tea.Program) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.wake:
			p.Send(drainMsg{})
		}
	}
}
