package search

import "time"

// Timer is a cancellable handle to a scheduled task
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d on its own goroutine
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules with the runtime timer
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
