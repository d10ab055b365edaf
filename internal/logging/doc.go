// Package logging builds zerolog loggers from configuration and carries them,
// together with a per-invocation trace id, through context.Context.
package logging
