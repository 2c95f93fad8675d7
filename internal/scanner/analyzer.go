// Package scanner enumerates the files of a workspace directory and
// dispatches each one to the classifier registered for its extension.
package scanner

import "context"

// Classifier is the interface that every format engine implements.
//
// Classify never fails: read and parse problems are reported through the
// returned record's Issues.
type Classifier interface {
	Kind() Kind
	Extensions() []string
	Classify(ctx context.Context, target *Target) Record
}
