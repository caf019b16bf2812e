package plugin

import "fmt"

// UnknownPluginError reports a task declaration naming a plugin kind with no
// registered constructor.
type UnknownPluginError struct {
	Kind  string
	Known []string
}

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("plugin: unknown plugin %q (known: %v)", e.Kind, e.Known)
}

// AlreadyRegisteredError reports a second Register call for a plugin kind
// that already has a constructor bound. This is a construction-time
// programming error (two init() functions colliding on a name), so Register
// panics with it rather than threading an error return through every
// package-level init().
type AlreadyRegisteredError struct {
	Kind string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("plugin: %q already registered", e.Kind)
}
