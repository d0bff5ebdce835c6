package listenable

import (
	"fmt"

	"github.com/dmitrymomot/listenkit/pkg/config"
)

// EnvPrefix namespaces the environment variables read by LoadModes.
const EnvPrefix = "LISTENABLE_"

// LoadModes reads Modes from the environment (LISTENABLE_ON_VALIDATION_ERROR,
// LISTENABLE_ON_UNDOCUMENTED_ERROR, LISTENABLE_ON_SAME_OBJECT_ERROR,
// LISTENABLE_ON_LISTENER_ERROR) and any extra sources given in opts, such as
// config.WithFile for a YAML document. Unset modes stay empty, so passing
// the result to WithConfig only overrides what was configured.
func LoadModes(opts ...config.Option) (Modes, error) {
	var m Modes
	opts = append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)
	if err := config.Load(&m, opts...); err != nil {
		return Modes{}, fmt.Errorf("load listenable modes: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Modes{}, err
	}
	return m, nil
}
