// Package listenkit is a toolkit for validated, observable application state.
//
// The packages are meant to be used together but import nothing outside the
// module besides their own small dependencies:
//
//   - pkg/listenable: the Listenable property container, its shared error
//     Policy and the mode loader
//   - pkg/validators: ready-made Validator predicates and combinators
//   - pkg/bind: ties a listener's lifetime to a component's mount cycle
//   - pkg/logger: slog setup and the attribute helpers used in diagnostics
//   - pkg/config: environment, .env and YAML loading
//
// A typical setup:
//
//	modes, err := listenable.LoadModes()
//	if err != nil {
//		return err
//	}
//
//	settings := listenable.MustNew(
//		listenable.WithName("settings"),
//		listenable.WithConfig(modes),
//		listenable.WithValidators(map[string]listenable.Validator{
//			"theme":    validators.OneOf("light", "dark"),
//			"pageSize": validators.Integer,
//		}),
//		listenable.WithInitialState(listenable.State{"theme": "light", "pageSize": 20}),
//	)
//
//	_, unsubscribe := settings.Listen(func(value, previous any, prop string) {
//		slog.Info("setting changed", logger.Property(prop), logger.Value(value))
//	})
//	defer unsubscribe()
package listenkit
