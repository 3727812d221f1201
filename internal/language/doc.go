// Package language normalizes translation language input.
//
// Callers pass whatever the user typed, either a name ("Korean") or an
// ISO 639-1 code ("ko"), and get back a canonical Language carrying both
// forms. Prompt-specific descriptions live here too, since some names are
// ambiguous when handed to a translation model ("Chinese" alone does not
// pick a script).
package language
