// Package logging builds slog loggers for the CLI.
//
// Two formats are supported: "console" renders single-line
// human-readable output with flattened key=value attributes, and "json"
// emits structured records with ts/level/msg keys. Output defaults to
// stderr so stdout stays reserved for command results.
package logging
