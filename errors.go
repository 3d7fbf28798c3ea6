package confreg

import "errors"

// Declaration and load errors returned by [Conf.Declare], [Conf.Require] and
// [Conf.Load]. Declaration errors indicate malformed static declarations and
// are expected to be fatal to program construction.
var (
	// ErrOddDeclaration indicates a batch declaration with an odd number of
	// arguments (declarations are (key, spec) pairs).
	ErrOddDeclaration = errors.New("declaration list must contain (key, spec) pairs")
	// ErrNotAKey indicates a value in a key position that is neither a [Key]
	// nor a string parseable as one.
	ErrNotAKey = errors.New("not a configuration key")
	// ErrNotASpec indicates a value in a spec position that is neither nil
	// nor a [Spec].
	ErrNotASpec = errors.New("not a validation spec")
	// ErrMalformedSource indicates a config file that exists but cannot be
	// parsed as a flat JSON mapping of key to value.
	ErrMalformedSource = errors.New("malformed configuration source")
)
