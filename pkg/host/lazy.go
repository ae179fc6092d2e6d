package host

import (
	"sync"

	"github.com/vango-dev/modalhost/pkg/modal"
	"github.com/vango-dev/modalhost/pkg/vdom"
)

type lazyState uint8

const (
	lazyIdle lazyState = iota
	lazyLoading
	lazyReady
	lazyFailed
)

// LazyComponent is a modal component whose Renderer is loaded on first use.
// Its load function runs at most once.
type LazyComponent struct {
	load func() (Renderer, error)

	mu       sync.Mutex
	state    lazyState
	renderer Renderer
	err      error
	done     chan struct{}
}

// Lazy wraps load as a deferred component.
func Lazy(load func() (Renderer, error)) *LazyComponent {
	return &LazyComponent{
		load: load,
		done: make(chan struct{}),
	}
}

// Ready reports whether the load has finished, successfully or not.
func (l *LazyComponent) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == lazyReady || l.state == lazyFailed
}

// Err returns the load error, if the load failed.
func (l *LazyComponent) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Render implements Renderer. It renders nothing until the load finished.
func (l *LazyComponent) Render(props modal.Props) *vdom.VNode {
	l.mu.Lock()
	r := l.renderer
	l.mu.Unlock()
	if r == nil {
		return nil
	}
	return r.Render(props)
}

// Preload starts the load in a new goroutine unless it already started.
// onDone is called after a load started by this call finishes.
func (l *LazyComponent) Preload(onDone func()) {
	l.mu.Lock()
	if l.state != lazyIdle {
		l.mu.Unlock()
		return
	}
	l.state = lazyLoading
	l.mu.Unlock()

	go func() {
		l.run()
		if onDone != nil {
			onDone()
		}
	}()
}

// Wait loads synchronously, or waits for a load already in flight, and
// returns its result.
func (l *LazyComponent) Wait() (Renderer, error) {
	l.mu.Lock()
	switch l.state {
	case lazyIdle:
		l.state = lazyLoading
		l.mu.Unlock()
		l.run()
	default:
		l.mu.Unlock()
		<-l.done
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.renderer, l.err
}

func (l *LazyComponent) run() {
	var (
		r   Renderer
		err error
	)
	if l.load != nil {
		r, err = l.load()
	}

	l.mu.Lock()
	if err != nil || r == nil {
		l.state = lazyFailed
		l.err = err
	} else {
		l.state = lazyReady
		l.renderer = r
	}
	l.mu.Unlock()
	close(l.done)
}
