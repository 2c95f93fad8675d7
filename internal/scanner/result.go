package scanner

// This package re-exports types from internal/types for convenience.
// The canonical types live in internal/types to avoid import cycles.

import "github.com/garagon/datascout/internal/types"

type (
	Kind    = types.Kind
	Record  = types.Record
	Summary = types.Summary
)

const (
	KindDelimited    = types.KindDelimited
	KindSQL          = types.KindSQL
	KindUnstructured = types.KindUnstructured
	KindSpreadsheet  = types.KindSpreadsheet
)

var ParseKind = types.ParseKind
