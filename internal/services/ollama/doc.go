// Package ollama implements the translation backend against a local
// Ollama instance's generate API.
//
// Batch requests number each segment ("N. text") and the model is asked
// to answer in the same format; inner line breaks are swapped to a " || "
// delimiter for the round trip. Failures are classified into the services
// package markers: transport errors and HTTP/API errors map to
// ErrUnreachable, deadline hits to ErrTimeout, undecodable payloads to
// ErrMalformed, and missing numbered lines to ErrPartialResult.
package ollama
