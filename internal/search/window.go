package search

import "iter"

// DefaultWindowSize is the number of page buttons shown at once
const DefaultWindowSize = 5

// PageWindow yields the page numbers to render as navigation controls.
// The window stays centred on current and pins to either end of the
// range near the boundaries. It never yields more than windowSize pages
// and yields nothing when totalPages is 0.
func PageWindow(current, totalPages, windowSize int) iter.Seq[int] {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	half := windowSize / 2

	start := max(1, current-half)
	end := min(totalPages, current+half)
	if current <= half {
		end = min(totalPages, windowSize)
	} else if current+half >= totalPages {
		start = max(1, totalPages-windowSize+1)
	}
	// Even window sizes would otherwise span windowSize+1 pages mid-range
	if end-start+1 > windowSize {
		end = start + windowSize - 1
	}

	return func(yield func(int) bool) {
		for i := start; i <= end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
