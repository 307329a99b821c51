// Package navstore implements a subscription store for the current
// navigation location (pathname plus search). Mutations go through Push and
// Replace, which normalize the target and notify subscribers; Back and
// Forward replay history entries the way browser navigation does.
// Subscribers are only notified when the location actually changes.
package navstore

import (
	"net/url"
	"strings"
	"sync"
)

// Listener receives the new location after a change.
type Listener func(location string)

type Store struct {
	mu        sync.Mutex
	entries   []string
	index     int
	nextID    int
	listeners map[int]Listener
}

// New creates a store positioned at "/".
func New() *Store {
	return &Store{
		entries:   []string{"/"},
		index:     0,
		listeners: make(map[int]Listener),
	}
}

// Current returns the location synchronously.
func (s *Store) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.index]
}

// Subscribe registers fn and returns an unsubscribe func.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Push navigates to target, appending a history entry and dropping any
// forward entries. Pushing the current location is a no-op: no entry, no
// notification.
func (s *Store) Push(target string) {
	location := Normalize(target)

	s.mu.Lock()
	if location == s.entries[s.index] {
		s.mu.Unlock()
		return
	}
	s.entries = append(s.entries[:s.index+1], location)
	s.index = len(s.entries) - 1
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, location)
}

// Replace swaps the current history entry for target without growing the
// history. Replacing with the current location is a no-op.
func (s *Store) Replace(target string) {
	location := Normalize(target)

	s.mu.Lock()
	if location == s.entries[s.index] {
		s.mu.Unlock()
		return
	}
	s.entries[s.index] = location
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, location)
}

// Sync records an externally-driven location change, such as the embedding
// application moving on its own. The current entry is updated in place and
// subscribers are notified unless the normalized location is already
// current.
func (s *Store) Sync(target string) {
	s.Replace(target)
}

// Back moves one entry backwards, if possible, and returns the resulting
// location.
func (s *Store) Back() string {
	s.mu.Lock()
	if s.index == 0 {
		location := s.entries[s.index]
		s.mu.Unlock()
		return location
	}
	s.index--
	location := s.entries[s.index]
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, location)
	return location
}

// Forward moves one entry forwards, if possible, and returns the resulting
// location.
func (s *Store) Forward() string {
	s.mu.Lock()
	if s.index == len(s.entries)-1 {
		location := s.entries[s.index]
		s.mu.Unlock()
		return location
	}
	s.index++
	location := s.entries[s.index]
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, location)
	return location
}

// snapshotListeners must be called with s.mu held.
func (s *Store) snapshotListeners() []Listener {
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func notify(listeners []Listener, location string) {
	for _, fn := range listeners {
		fn(location)
	}
}

// Normalize reduces target to a rooted pathname plus search: fragments and
// any scheme/host are dropped, a missing leading slash is added, and a
// trailing slash is trimmed everywhere but the root.
func Normalize(target string) string {
	parsed, err := url.Parse(target)
	if err != nil {
		return "/"
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}

	if parsed.RawQuery != "" {
		return path + "?" + parsed.RawQuery
	}
	return path
}
