package regkit

import "errors"

// Sentinel errors for regkit operations.
var (
	// ErrInvalidConfiguration indicates mutually exclusive or incomplete
	// constructor options. It is always wrapped with a message naming the
	// violated constraint.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrUnknownReference indicates a backreference to a group that does not
	// precede it in the pattern.
	ErrUnknownReference = errors.New("unknown backreference")
	// ErrNestedSets indicates a pattern holding nested classes or set
	// operators was compiled with an engine that reads them as plain
	// bracket characters.
	ErrNestedSets = errors.New("engine has no nested set syntax")
	// ErrReferenceOrder indicates a numbered backreference that the engine
	// would resolve to a different group than the one it counts to.
	ErrReferenceOrder = errors.New("backreference numbering differs from the engine's")
)
