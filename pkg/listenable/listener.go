package listenable

import (
	"slices"

	"github.com/google/uuid"
)

// ListenerFunc receives the new value, the value it replaced and the
// property name. previous is nil on the first set of a property and on
// retroactive notifications.
type ListenerFunc func(value, previous any, prop string)

// Listener is a subscription handle. Listeners are compared by pointer, so
// the same *Listener must be passed to RemoveListener that was passed to
// AddListener.
type Listener struct {
	id string
	fn ListenerFunc
}

// NewListener wraps fn into a Listener. A nil fn yields a listener that
// does nothing.
func NewListener(fn ListenerFunc) *Listener {
	return &Listener{id: uuid.NewString(), fn: fn}
}

// ID returns the identifier used for this listener in diagnostics.
func (ln *Listener) ID() string {
	return ln.id
}

func (ln *Listener) notify(value, previous any, prop string) {
	if ln.fn != nil {
		ln.fn(value, previous, prop)
	}
}

// Unsubscribe removes the listener it was returned for from exactly the
// targets it was added with.
type Unsubscribe func() error

// registry keeps per-property and omni listener lists in registration order.
// Lists are replaced, never mutated in place, on removal so a dispatch that
// is iterating an older list is not affected.
type registry struct {
	byProp map[string][]*Listener
	omni   []*Listener
}

func newRegistry() registry {
	return registry{byProp: make(map[string][]*Listener)}
}

func (r *registry) add(ln *Listener, prop string) {
	r.byProp[prop] = append(r.byProp[prop], ln)
}

func (r *registry) addOmni(ln *Listener) {
	r.omni = append(r.omni, ln)
}

// remove drops every entry of ln registered for prop and returns how many
// were dropped. ok is false when prop never had a listener list.
func (r *registry) remove(ln *Listener, prop string) (removed int, ok bool) {
	list, ok := r.byProp[prop]
	if !ok {
		return 0, false
	}
	kept := without(list, ln)
	r.byProp[prop] = kept
	return len(list) - len(kept), true
}

func (r *registry) removeOmni(ln *Listener) int {
	kept := without(r.omni, ln)
	removed := len(r.omni) - len(kept)
	r.omni = kept
	return removed
}

func (r *registry) forProp(prop string) []*Listener {
	list := r.byProp[prop]
	return list[:len(list):len(list)]
}

func (r *registry) omniList() []*Listener {
	return r.omni[:len(r.omni):len(r.omni)]
}

func (r *registry) count(prop string) int {
	return len(r.byProp[prop])
}

func without(list []*Listener, ln *Listener) []*Listener {
	kept := make([]*Listener, 0, len(list))
	for _, x := range list {
		if x != ln {
			kept = append(kept, x)
		}
	}
	return slices.Clip(kept)
}
