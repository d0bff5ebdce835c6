package listenable

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/dmitrymomot/listenkit/pkg/logger"
)

// Mode decides what happens when a policy-gated problem is raised.
type Mode string

const (
	// ModeIgnore drops the problem silently.
	ModeIgnore Mode = "ignore"
	// ModeLog writes the problem to the policy logger and continues.
	ModeLog Mode = "log"
	// ModeAbort returns the problem as an error, ending the operation.
	ModeAbort Mode = "abort"
)

// ParseMode converts a textual mode into a Mode.
// "none" and "throw" are accepted as aliases of ignore and abort.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "ignore", "none":
		return ModeIgnore, nil
	case "log":
		return ModeLog, nil
	case "abort", "throw":
		return ModeAbort, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so modes can be read
// from environment variables and YAML documents.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) valid() bool {
	switch m {
	case "", ModeIgnore, ModeLog, ModeAbort:
		return true
	}
	return false
}

// Modes maps every policy-gated kind to a Mode.
// An empty field keeps the value the policy already holds.
type Modes struct {
	OnValidationError   Mode `env:"ON_VALIDATION_ERROR" yaml:"on_validation_error"`
	OnUndocumentedError Mode `env:"ON_UNDOCUMENTED_ERROR" yaml:"on_undocumented_error"`
	OnSameObjectError   Mode `env:"ON_SAME_OBJECT_ERROR" yaml:"on_same_object_error"`
	OnListenerError     Mode `env:"ON_LISTENER_ERROR" yaml:"on_listener_error"`
}

// DefaultModes returns the modes a fresh Policy starts with:
// invalid values and listener mismatches are logged, re-set objects are
// logged, undocumented properties are ignored.
func DefaultModes() Modes {
	return Modes{
		OnValidationError:   ModeLog,
		OnUndocumentedError: ModeIgnore,
		OnSameObjectError:   ModeLog,
		OnListenerError:     ModeLog,
	}
}

// Validate reports the first unknown mode.
func (m Modes) Validate() error {
	fields := []struct {
		name string
		mode Mode
	}{
		{"on_validation_error", m.OnValidationError},
		{"on_undocumented_error", m.OnUndocumentedError},
		{"on_same_object_error", m.OnSameObjectError},
		{"on_listener_error", m.OnListenerError},
	}
	for _, f := range fields {
		if !f.mode.valid() {
			return fmt.Errorf("%w: %s=%q", ErrInvalidMode, f.name, f.mode)
		}
	}
	return nil
}

func (m Modes) merge(o Modes) Modes {
	if o.OnValidationError != "" {
		m.OnValidationError = o.OnValidationError
	}
	if o.OnUndocumentedError != "" {
		m.OnUndocumentedError = o.OnUndocumentedError
	}
	if o.OnSameObjectError != "" {
		m.OnSameObjectError = o.OnSameObjectError
	}
	if o.OnListenerError != "" {
		m.OnListenerError = o.OnListenerError
	}
	return m
}

func (m Modes) of(kind Kind) Mode {
	switch kind {
	case KindValidationInvalid:
		return m.OnValidationError
	case KindUndocumentedProperty:
		return m.OnUndocumentedError
	case KindSameObjectReassignment:
		return m.OnSameObjectError
	case KindListenerRemoveMismatch:
		return m.OnListenerError
	}
	return ModeAbort
}

// Policy is the error-handling configuration shared by listenables.
// It can be assigned exactly once; afterwards it is read-only.
// Policy is safe for concurrent use.
type Policy struct {
	mu     sync.RWMutex
	modes  Modes
	sealed bool
	logger *slog.Logger
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithLogger sets the logger used by ModeLog. Nil loggers are ignored.
func WithLogger(l *slog.Logger) PolicyOption {
	return func(p *Policy) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithBaseModes replaces the starting modes without sealing the policy.
// Invalid modes in m are ignored field by field.
func WithBaseModes(m Modes) PolicyOption {
	return func(p *Policy) {
		if m.Validate() == nil {
			p.modes = p.modes.merge(m)
		}
	}
}

// NewPolicy creates an unsealed policy holding DefaultModes.
func NewPolicy(opts ...PolicyOption) *Policy {
	p := &Policy{
		modes: DefaultModes(),
		logger: logger.New(
			logger.WithTextFormatter(),
			logger.WithOutput(os.Stderr),
			logger.WithLevel(slog.LevelWarn),
			logger.WithAttr(logger.Component("listenable")),
		),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var (
	defaultPolicyOnce sync.Once
	defaultPolicy     *Policy
)

// DefaultPolicy returns the process-wide policy used by listenables that
// were not given one with WithPolicy.
func DefaultPolicy() *Policy {
	defaultPolicyOnce.Do(func() { defaultPolicy = NewPolicy() })
	return defaultPolicy
}

// Assign overrides the policy modes and seals it.
// Any call after the first one fails with a duplicate-config-assignment error
// and leaves the policy untouched, whatever modes it carries. Invalid modes
// on an unsealed policy fail with ErrInvalidMode and do not seal it.
func (p *Policy) Assign(m Modes) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sealed {
		return newError(KindDuplicateConfigAssignment, "", nil,
			"all listenables share the same config, set it on one of them only")
	}
	if err := m.Validate(); err != nil {
		return err
	}
	p.modes = p.modes.merge(m)
	p.sealed = true
	return nil
}

// Sealed reports whether Assign has already been called.
func (p *Policy) Sealed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sealed
}

// Modes returns the current modes.
func (p *Policy) Modes() Modes {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modes
}

// Mode returns the mode applied to kind. Fatal kinds always abort.
func (p *Policy) Mode(kind Kind) Mode {
	if kind.Fatal() {
		return ModeAbort
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modes.of(kind)
}

// Handle applies the policy to err: it returns err when the operation must
// abort, and nil otherwise.
func (p *Policy) Handle(err *Error, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}

	switch p.Mode(err.Kind) {
	case ModeIgnore:
		return nil
	case ModeLog:
		p.log(err, attrs)
		return nil
	default:
		return err
	}
}

func (p *Policy) log(err *Error, attrs []slog.Attr) {
	p.mu.RLock()
	l := p.logger
	p.mu.RUnlock()

	all := make([]slog.Attr, 0, len(attrs)+5)
	all = append(all,
		logger.Error(err.Unwrap()),
		logger.ErrorKind(string(err.Kind)),
		logger.Mode(string(ModeLog)),
	)
	if err.Property != "" {
		all = append(all, logger.Property(err.Property))
	}
	if err.Value != nil {
		all = append(all, logger.Value(err.Value))
	}
	all = append(all, attrs...)
	l.LogAttrs(context.Background(), slog.LevelWarn, err.Error(), all...)
}
