package library

import (
	"log"
	"sync"
)

// watchHub tracks live-query subscribers per collection. Each subscriber
// has its own goroutine that re-runs the read after every write to the
// source collection. Signals are level-triggered: a burst of writes may
// coalesce into a single delivery, but deliveries follow write order.
type watchHub struct {
	mu       sync.Mutex
	watchers map[string][]*watcher
}

type watcher struct {
	signal chan struct{}
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newWatchHub() *watchHub {
	return &watchHub{watchers: make(map[string][]*watcher)}
}

func (h *watchHub) subscribe(name string, run func()) func() {
	w := &watcher{
		signal: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	h.watchers[name] = append(h.watchers[name], w)
	h.mu.Unlock()

	// Initial delivery on subscribe.
	w.signal <- struct{}{}

	go func() {
		defer close(w.done)
		for {
			select {
			case <-w.stop:
				return
			case <-w.signal:
				// Re-check stop so a cancelled watcher never fires late.
				select {
				case <-w.stop:
					return
				default:
				}
				run()
			}
		}
	}()

	return func() {
		w.once.Do(func() {
			h.mu.Lock()
			list := h.watchers[name]
			for i, other := range list {
				if other == w {
					h.watchers[name] = append(list[:i], list[i+1:]...)
					break
				}
			}
			h.mu.Unlock()
			close(w.stop)
			// Wait out any in-flight callback; after this returns the
			// subscriber sees no further deliveries.
			<-w.done
		})
	}
}

func (h *watchHub) notify(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, w := range h.watchers[name] {
		select {
		case w.signal <- struct{}{}:
		default: // a delivery is already pending; coalesce
		}
	}
}

// Watch re-runs a full scan after every mutation of the collection and
// pushes the result to fn, starting with one delivery of the current
// contents. The returned func unsubscribes; once it returns, fn is never
// called again. Read failures inside the watcher are logged and skipped,
// never fatal.
func (c *Collection[T]) Watch(fn func([]T)) func() {
	return c.store.hub.subscribe(c.name, func() {
		items, err := c.All()
		if err != nil {
			log.Printf("watch %s: %v", c.name, err)
			return
		}
		fn(items)
	})
}
