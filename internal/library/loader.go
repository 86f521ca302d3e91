package library

import (
	"context"
	"image"
	"sync"
)

// Result is a page decoded by a Loader.
type Result struct {
	Index int
	Image image.Image
	Err   error
}

// Loader decodes pages on a background goroutine so a frame never waits
// for a decode. Only the retained window (a page and its neighbours) is
// decoded; jobs that fall out of it before they start are skipped.
type Loader struct {
	lib     *Library
	jobs    chan int
	results chan Result

	mu      sync.Mutex
	pending map[int]bool
	center  int
}

// NewLoader creates a loader over lib with page start retained.
func NewLoader(lib *Library, start int) *Loader {
	return &Loader{
		lib:     lib,
		jobs:    make(chan int, 8),
		results: make(chan Result, 8),
		pending: make(map[int]bool),
		center:  start,
	}
}

// Request queues page i unless it is already queued or outside the
// retained window. It never blocks: when the queue is full the request is
// dropped and the next frame asks again.
func (l *Loader) Request(i int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending[i] || !l.wanted(i) {
		return
	}
	select {
	case l.jobs <- i:
		l.pending[i] = true
	default:
	}
}

// Retain moves the window to page i and drops decoded images outside it.
func (l *Loader) Retain(i int) {
	l.mu.Lock()
	l.center = i
	l.mu.Unlock()
	l.lib.Retain(i)
}

// Wanted reports whether page i is inside the retained window.
func (l *Loader) Wanted(i int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.wanted(i)
}

func (l *Loader) wanted(i int) bool {
	return i >= 0 && i < l.lib.Len() && i >= l.center-1 && i <= l.center+1
}

// Poll returns the results delivered since the last call.
func (l *Loader) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Run decodes queued pages until ctx is done. notify, if not nil, is
// called after each delivered result so the host can schedule a frame.
func (l *Loader) Run(ctx context.Context, notify func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case i := <-l.jobs:
			r, ok := l.load(i)
			if !ok {
				continue
			}
			select {
			case l.results <- r:
			case <-ctx.Done():
				return ctx.Err()
			}
			if notify != nil {
				notify()
			}
		}
	}
}

func (l *Loader) load(i int) (Result, bool) {
	defer func() {
		l.mu.Lock()
		delete(l.pending, i)
		l.mu.Unlock()
	}()
	if !l.Wanted(i) {
		return Result{}, false
	}
	img, err := l.lib.Image(i)
	return Result{Index: i, Image: img, Err: err}, true
}
