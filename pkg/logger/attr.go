package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Property records a property name under the key "property".
func Property(name string) slog.Attr {
	return slog.String("property", name)
}

// Value records the offending value under the key "value".
func Value(v any) slog.Attr {
	return slog.Any("value", v)
}

// ErrorKind records the problem class under the key "error_kind".
func ErrorKind(kind string) slog.Attr {
	return slog.String("error_kind", kind)
}

// Mode records the handling mode under the key "mode".
func Mode(mode string) slog.Attr {
	return slog.String("mode", mode)
}

// ListenableID records the container identifier under the key "listenable_id".
// If id is empty, it returns an empty Attr.
func ListenableID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("listenable_id", id)
}

// ListenerID records the listener identifier under the key "listener_id".
// If id is empty, it returns an empty Attr.
func ListenerID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("listener_id", id)
}
