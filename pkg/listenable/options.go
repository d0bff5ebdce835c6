package listenable

// Option configures a Listenable during construction.
type Option func(*options)

type child struct {
	name string
	l    *Listenable
}

type options struct {
	name       string
	validators map[string]Validator
	uniform    Validator
	initial    State
	config     *Modes
	policy     *Policy
	props      State
	children   []child
	maxDepth   int
}

// WithName sets the identifier reported in diagnostics.
// Without it a random UUID is used.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithValidators registers per-property validators.
func WithValidators(validators map[string]Validator) Option {
	return func(o *options) {
		for name, v := range validators {
			WithValidator(name, v)(o)
		}
	}
}

// WithValidator registers the validator for a single property.
func WithValidator(name string, v Validator) Option {
	return func(o *options) {
		if v == nil {
			return
		}
		if o.validators == nil {
			o.validators = make(map[string]Validator)
		}
		o.validators[name] = v
	}
}

// WithUniformValidator sets the fallback validator used for any property
// without its own validator.
func WithUniformValidator(v Validator) Option {
	return func(o *options) {
		o.uniform = v
	}
}

// WithInitialState sets the values applied at construction and restored by
// Reset. The map is copied.
func WithInitialState(state State) Option {
	return func(o *options) {
		if state == nil {
			return
		}
		o.initial = make(State, len(state))
		for k, v := range state {
			o.initial[k] = v
		}
	}
}

// WithConfig assigns the shared policy modes. Only one listenable per
// policy may do so; later attempts fail construction.
func WithConfig(m Modes) Option {
	return func(o *options) {
		o.config = &m
	}
}

// WithPolicy makes the listenable report to p instead of DefaultPolicy.
func WithPolicy(p *Policy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

// WithProps sets additional named properties at construction. Unlike the
// initial state they are not restored by Reset.
func WithProps(props State) Option {
	return func(o *options) {
		if o.props == nil {
			o.props = make(State, len(props))
		}
		for k, v := range props {
			o.props[k] = v
		}
	}
}

// WithChild stores l as property name and registers it as a sub-listenable,
// so that finalizing the parent finalizes l too.
func WithChild(name string, l *Listenable) Option {
	return func(o *options) {
		if l != nil {
			o.children = append(o.children, child{name: name, l: l})
		}
	}
}

// WithMaxDispatchDepth bounds how deeply listeners may re-enter Set on the
// same listenable. Zero, the default, means unbounded.
func WithMaxDispatchDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}
