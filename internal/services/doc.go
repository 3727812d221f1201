// Package services defines the error taxonomy shared by translation
// backend adapters.
//
// The batch translator treats every marker here the same way: a failed
// batch is split and retried until the failure is isolated to a single
// segment. Adapters classify transport and payload failures into these
// markers with Wrap so the translator never needs backend-specific
// knowledge.
package services
