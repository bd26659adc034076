package domain

import "io"

// Command describes one subprocess invocation.
type Command struct {
	// Name is the executable to run, resolved against PATH when relative.
	Name string

	// Args are the arguments, not including the executable name.
	Args []string

	// Dir is the working directory. Empty means the caller's.
	Dir string

	// Env holds extra KEY=VALUE entries appended to the inherited
	// environment.
	Env []string

	// Stdout and Stderr receive the child's output streams. Nil means
	// the parent's own stream, so the user sees compiler diagnostics
	// live.
	Stdout io.Writer
	Stderr io.Writer
}
