// Package runner sequences one workflow invocation: it materializes the run
// config, writes the generated command to a script in the run directory,
// starts that script with bash from the installation root and streams the
// engine's output back to the caller as it arrives.
//
// A run is never retried. Whatever the outcome, the config snapshot and the
// script stay on disk for inspection.
package runner
