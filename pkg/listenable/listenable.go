package listenable

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/listenkit/pkg/logger"
)

// State maps property names to values.
type State map[string]any

// Validator decides whether value may be stored as prop on l.
type Validator func(value any, l *Listenable, prop string) bool

func rejectAll(any, *Listenable, string) bool { return false }

// reservedNames can never be set: they name the listenable's own
// bookkeeping and operations.
var reservedNames = []string{
	"listeners", "omniListeners", "subListenables", "config",
	"validator", "uniValidator", "initialState", "isInitialized",
	"_listeners", "_omniListeners", "_subListenables", "_config",
	"_validator", "_uniValidator", "_initialState", "_isInitialized",
	"set", "_set", "reset", "_reset", "finalize", "isValid", "_getValidator",
	"addListener", "_addListener", "_addOmniListener",
	"removeListener", "_removeListener", "_removeOmniListener",
	"_configFor", "_handleError", "_handleErrorAccordingToConfig",
	"Set", "SetProp", "Reset", "Finalize", "IsValid",
	"AddListener", "RemoveListener", "Listen",
}

// Listenable is a property container whose values change only through
// validated sets and whose changes are pushed synchronously to listeners.
//
// A Listenable is not safe for concurrent use. Listeners run on the caller's
// stack and may call back into the same Listenable.
type Listenable struct {
	id          string
	props       map[string]any
	order       []string
	validators  map[string]Validator
	uniform     Validator
	initial     State
	reg         registry
	children    []*Listenable
	policy      *Policy
	initialized bool
	finalized   bool

	suppress int
	depth    int
	maxDepth int
}

// New creates a Listenable. Props and children are set first, then the
// initial state, all through the same validation path as Set.
func New(opts ...Option) (*Listenable, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	policy := o.policy
	if policy == nil {
		policy = DefaultPolicy()
	}
	if o.config != nil {
		if err := policy.Assign(*o.config); err != nil {
			return nil, err
		}
	}

	id := o.name
	if id == "" {
		id = uuid.NewString()
	}

	l := &Listenable{
		id:         id,
		props:      make(map[string]any),
		validators: make(map[string]Validator, len(o.validators)+len(reservedNames)),
		uniform:    o.uniform,
		initial:    o.initial,
		reg:        newRegistry(),
		policy:     policy,
		maxDepth:   o.maxDepth,
	}
	for name, v := range o.validators {
		l.validators[name] = v
	}
	for _, name := range reservedNames {
		l.validators[name] = rejectAll
	}

	named := make(State, len(o.props)+len(o.children))
	for k, v := range o.props {
		named[k] = v
	}
	for _, c := range o.children {
		named[c.name] = c.l
	}
	if len(named) > 0 {
		if err := l.Set(named); err != nil {
			return nil, fmt.Errorf("set named properties: %w", err)
		}
	}
	for _, c := range o.children {
		if v, ok := l.props[c.name]; ok && v == any(c.l) {
			l.children = append(l.children, c.l)
		}
	}

	if l.initial != nil {
		if err := l.Set(l.initial); err != nil {
			return nil, fmt.Errorf("set initial state: %w", err)
		}
	}

	l.initialized = true
	return l, nil
}

// MustNew works like New but panics on error.
func MustNew(opts ...Option) *Listenable {
	l, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create listenable: %v", err))
	}
	return l
}

// ID returns the identifier used in diagnostics.
func (l *Listenable) ID() string { return l.id }

// Policy returns the error policy this listenable reports to.
func (l *Listenable) Policy() *Policy { return l.policy }

// Initialized reports whether construction has completed.
func (l *Listenable) Initialized() bool { return l.initialized }

// Finalized reports whether Finalize has been called on l or on a parent.
func (l *Listenable) Finalized() bool { return l.finalized }

// Get returns the current value of prop.
func (l *Listenable) Get(prop string) (any, bool) {
	v, ok := l.props[prop]
	return v, ok
}

// Has reports whether prop has ever been set.
func (l *Listenable) Has(prop string) bool {
	_, ok := l.props[prop]
	return ok
}

// Keys returns the property names in the order they were first set.
func (l *Listenable) Keys() []string {
	return slices.Clone(l.order)
}

// Snapshot returns a copy of all current properties.
func (l *Listenable) Snapshot() State {
	out := make(State, len(l.props))
	for k, v := range l.props {
		out[k] = v
	}
	return out
}

// Children returns the registered sub-listenables.
func (l *Listenable) Children() []*Listenable {
	return slices.Clone(l.children)
}

// GetAs returns prop converted to T. ok is false when prop is unset or
// holds a value of another type.
func GetAs[T any](l *Listenable, prop string) (T, bool) {
	v, ok := l.props[prop]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// resolve returns the validator for prop: its own one, else the uniform
// one, else nil.
func (l *Listenable) resolve(prop string) Validator {
	if v := l.validators[prop]; v != nil {
		return v
	}
	return l.uniform
}

// IsValid runs the check Set would run for prop without storing anything,
// notifying anyone or reporting to the policy. A property without any
// validator is valid.
func (l *Listenable) IsValid(prop string, value any) bool {
	v := l.resolve(prop)
	if v == nil {
		return true
	}
	return v(value, l, prop)
}

// Set validates and stores every entry of state, in ascending name order.
// Rejected entries are reported to the policy and skipped; the remaining
// entries are still applied. Set returns an error only when the policy
// aborts or the input is malformed.
func (l *Listenable) Set(state State) error {
	if state == nil {
		return newError(KindMalformedSetInput, "", nil, "set takes a non-nil State")
	}
	for name := range state {
		if name == "" {
			return newError(KindMalformedSetInput, "", nil, "property names must not be empty")
		}
	}

	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := l.set(name, state[name]); err != nil {
			return err
		}
	}
	return nil
}

// SetProp sets a single property.
func (l *Listenable) SetProp(prop string, value any) error {
	return l.Set(State{prop: value})
}

func (l *Listenable) set(prop string, value any) error {
	v := l.resolve(prop)
	if v == nil {
		if err := l.raise(newError(KindUndocumentedProperty, prop, nil, "missing validator")); err != nil {
			return err
		}
	} else if !v(value, l, prop) {
		return l.raise(newError(KindValidationInvalid, prop, value, "attempted setting invalid value %#v", value))
	}

	prev, existed := l.props[prop]
	if existed && same(prev, value) {
		if composite(value) {
			return l.raise(newError(KindSameObjectReassignment, prop, value,
				"tried to set an object which was already present"))
		}
		return nil
	}

	if l.maxDepth > 0 && l.depth >= l.maxDepth {
		return newError(KindDispatchDepthExceeded, prop, value, "more than %d nested dispatches", l.maxDepth)
	}

	if !existed {
		l.order = append(l.order, prop)
	}
	l.props[prop] = value
	l.dispatch(prop, value, prev)
	return nil
}

func (l *Listenable) dispatch(prop string, value, prev any) {
	l.depth++
	defer func() { l.depth-- }()

	for _, ln := range l.reg.forProp(prop) {
		ln.notify(value, prev, prop)
	}
	for _, ln := range l.reg.omniList() {
		ln.notify(value, prev, prop)
	}
}

// raise routes a problem through the policy. While a Reset is restoring
// values, invalid and same-object reports are dropped.
func (l *Listenable) raise(err *Error, attrs ...slog.Attr) error {
	if l.suppress > 0 && (err.Kind == KindValidationInvalid || err.Kind == KindSameObjectReassignment) {
		return nil
	}
	return l.policy.Handle(err, append(attrs, logger.ListenableID(l.id))...)
}

// AddListener registers ln for the given properties, or for every property
// when no target is given, and immediately replays the current value of each
// covered property that is already set. A nil ln is ignored and the returned
// Unsubscribe does nothing.
func (l *Listenable) AddListener(ln *Listener, targets ...string) Unsubscribe {
	if ln == nil {
		return func() error { return nil }
	}
	targets = slices.Clone(targets)

	if len(targets) == 0 {
		l.reg.addOmni(ln)
		for _, prop := range slices.Clone(l.order) {
			ln.notify(l.props[prop], nil, prop)
		}
	} else {
		for _, prop := range targets {
			l.reg.add(ln, prop)
			if v, ok := l.props[prop]; ok {
				ln.notify(v, nil, prop)
			}
		}
	}

	return func() error {
		return l.RemoveListener(ln, targets...)
	}
}

// Listen wraps fn into a Listener and adds it.
func (l *Listenable) Listen(fn ListenerFunc, targets ...string) (*Listener, Unsubscribe) {
	ln := NewListener(fn)
	return ln, l.AddListener(ln, targets...)
}

// RemoveListener removes ln from the omni list, or from the list of every
// target. Each list is expected to hold ln exactly once; any other count is
// reported to the policy, but whatever matched is removed anyway.
// A nil ln is ignored.
func (l *Listenable) RemoveListener(ln *Listener, targets ...string) error {
	if ln == nil {
		return nil
	}
	lnAttr := logger.ListenerID(ln.ID())

	if len(targets) == 0 {
		if n := l.reg.removeOmni(ln); n != 1 {
			return l.raise(newError(KindListenerRemoveMismatch, "", nil,
				"tried to remove 1 omni listener, but removed %d", n), lnAttr)
		}
		return nil
	}

	var errs []error
	for _, prop := range targets {
		n, ok := l.reg.remove(ln, prop)
		var err error
		switch {
		case !ok:
			err = l.raise(newError(KindListenerRemoveMismatch, prop, nil,
				"could not remove listener, no listeners exist for property"), lnAttr)
		case n != 1:
			err = l.raise(newError(KindListenerRemoveMismatch, prop, nil,
				"tried to remove 1 listener, but removed %d", n), lnAttr)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ListenerCount returns how many listeners are registered for prop, or how
// many omni listeners exist when prop is empty.
func (l *Listenable) ListenerCount(prop string) int {
	if prop == "" {
		return len(l.reg.omni)
	}
	return l.reg.count(prop)
}

// Reset restores the given properties, or every property of the initial
// state when none are given, through the normal set path. Invalid-value and
// same-object reports are not raised while restoring.
func (l *Listenable) Reset(targets ...string) error {
	if l.initial == nil {
		return newError(KindResetMissingInitialState, "", nil, "cannot reset properties, initial state was not provided")
	}

	restore := l.initial
	if len(targets) > 0 {
		restore = make(State, len(targets))
		for _, prop := range targets {
			v, ok := l.initial[prop]
			if !ok {
				return newError(KindResetMissingPropInitialState, prop, nil, "cannot reset property without initial state")
			}
			restore[prop] = v
		}
	}

	l.suppress++
	defer func() { l.suppress-- }()
	return l.Set(restore)
}

// Finalize makes every property, set or not, permanently unsettable on l
// and on all its sub-listenables. Listeners stay registered.
func (l *Listenable) Finalize() {
	if l.finalized {
		return
	}
	l.finalized = true

	for name := range l.validators {
		l.validators[name] = rejectAll
	}
	l.uniform = rejectAll

	for _, c := range l.children {
		c.Finalize()
	}
}
