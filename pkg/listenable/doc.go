// Package listenable provides a validated, observable property container.
//
// A Listenable holds named properties that can only change through Set.
// Every incoming value is checked by the validator registered for its
// property, or by the uniform validator when there is none, and accepted
// changes are pushed synchronously to listeners:
//  1. Per-property listeners of the changed property, in registration order
//  2. Omni listeners, notified of every change, in registration order
//
// # Usage
//
//	isString := func(v any, _ *listenable.Listenable, _ string) bool {
//	    _, ok := v.(string)
//	    return ok
//	}
//
//	store := listenable.MustNew(
//	    listenable.WithValidator("title", isString),
//	    listenable.WithInitialState(listenable.State{"title": "draft"}),
//	)
//
//	_, unsubscribe := store.Listen(func(value, previous any, prop string) {
//	    fmt.Printf("%s: %v -> %v\n", prop, previous, value)
//	}, "title")
//	defer unsubscribe()
//
//	_ = store.Set(listenable.State{"title": "final"})
//
// Listeners added after a property was set are called once right away with
// the current value and a nil previous value, so late subscribers never miss
// state. Omni listeners replay properties in the order they were first set.
//
// # Validation
//
// A property without any validator is "undocumented": its value is accepted
// and the problem is only reported. Rejected values are reported and skipped;
// the other entries of the same Set call are still applied, so Set is not
// atomic across properties. Names used by the container itself (set,
// addListener, initialState, ...) are never settable.
//
// Finalize swaps every validator, the uniform one included, for a predicate
// that rejects everything, then finalizes sub-listenables registered with
// WithChild. Nothing can be set on a finalized listenable again.
//
// Reset restores properties from the initial state captured at construction.
//
// # Error Handling
//
// Problems have a Kind. Four kinds are decided by the shared Policy:
// validation-invalid, undocumented-property, same-object-reassignment and
// listener-remove-mismatch. Each maps to a Mode: ignore, log or abort.
// Aborting makes the operation return an *Error. The remaining kinds (bad
// input, missing initial state, config assigned twice) are always returned.
//
//	if listenable.IsKind(err, listenable.KindValidationInvalid) { /* ... */ }
//	if errors.Is(err, listenable.ErrResetMissingInitialState) { /* ... */ }
//
// All listenables report to DefaultPolicy unless given another one with
// WithPolicy. The policy modes can be assigned exactly once, through
// WithConfig on one listenable; LoadModes reads them from the environment
// or a YAML file.
//
// # Concurrency
//
// A Listenable is not safe for concurrent use: it holds no lock, and
// listeners run on the caller's stack and may re-enter Set. A listener that
// unconditionally sets the property it observes recurses without bound
// unless WithMaxDispatchDepth is used. Policy is safe for concurrent use.
package listenable
