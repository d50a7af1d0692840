package notify

import (
	"sync"
)

// RootKey is the key under which changes to the document root are signalled.
const RootKey = "root"

// Listener is called with the notified key.
type Listener func(key string)

type entry struct {
	serial uint64
	fn     Listener
}

// Registry maps keys to their listeners. It is safe for concurrent use;
// listeners are called outside the registry's lock.
type Registry struct {
	mx        sync.Mutex
	listeners map[string][]entry
	serial    uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[string][]entry)}
}

// Subscription is a handle returned by Subscribe.
type Subscription struct {
	reg    *Registry
	key    string
	serial uint64
}

// Key returns the key the subscription listens to.
func (s *Subscription) Key() string {
	return s.key
}

// Unsubscribe removes the listener. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.reg == nil {
		return
	}
	s.reg.remove(s.key, s.serial)
	s.reg = nil
}

// Subscribe registers fn for key.
func (r *Registry) Subscribe(key string, fn Listener) *Subscription {
	if fn == nil {
		return &Subscription{key: key}
	}
	r.mx.Lock()
	defer r.mx.Unlock()
	r.serial++
	r.listeners[key] = append(r.listeners[key], entry{serial: r.serial, fn: fn})
	return &Subscription{reg: r, key: key, serial: r.serial}
}

func (r *Registry) remove(key string, serial uint64) {
	r.mx.Lock()
	defer r.mx.Unlock()
	l := r.listeners[key]
	for i, e := range l {
		if e.serial == serial {
			rest := make([]entry, 0, len(l)-1)
			rest = append(rest, l[:i]...)
			rest = append(rest, l[i+1:]...)
			if len(rest) == 0 {
				delete(r.listeners, key)
			} else {
				r.listeners[key] = rest
			}
			return
		}
	}
}

// Notify calls every listener of key and returns the number of listeners
// called.
func (r *Registry) Notify(key string) int {
	r.mx.Lock()
	l := r.listeners[key]
	r.mx.Unlock()
	tracer().Debugf("notify %q, %d listener(s)", key, len(l))
	for _, e := range l {
		e.fn(key)
	}
	return len(l)
}

// Listeners returns the number of listeners of key.
func (r *Registry) Listeners(key string) int {
	r.mx.Lock()
	defer r.mx.Unlock()
	return len(r.listeners[key])
}

// Clear removes all listeners.
func (r *Registry) Clear() {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.listeners = make(map[string][]entry)
}
