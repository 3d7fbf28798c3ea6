// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package confreg

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Conf is one configuration context: the set of declared keys with their
// validation specs (the registry) plus the merged values and their per-key
// provenance (the store).
//
// A program normally creates a single Conf at startup, declares its keys,
// calls [Conf.Load], and treats a load error as fatal. Tests may create as
// many independent contexts as they need.
//
// All methods are safe for concurrent use: each registration or merge is an
// indivisible update, so readers never observe a partially merged source.
type Conf struct {
	mu         sync.RWMutex
	specs      map[Key]Spec // nil spec = required but unconstrained
	values     map[Key]any
	provenance map[Key]string

	log zerolog.Logger
}

// Option configures a [Conf] at construction time.
type Option func(*Conf)

// WithLogger sets the logger used for load and merge diagnostics. The
// default discards all output.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Conf) {
		c.log = log
	}
}

// New creates an empty configuration context.
func New(opts ...Option) *Conf {
	c := &Conf{
		specs:      make(map[Key]Spec),
		values:     make(map[Key]any),
		provenance: make(map[Key]string),
		log:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Register associates spec with key, inserting or overwriting the prior
// association (last declaration wins). A nil spec marks the key as required
// but unconstrained: its presence is checked at validation time, its shape
// is not. Registration is idempotent.
func (c *Conf) Register(key Key, spec Spec) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.specs[key] = spec
}

// Require marks the named key as needed without attaching a spec. A spec
// already registered for the key is kept: Require only records that the key
// must be present, it never weakens an existing association. It fails only
// if name is not a valid key.
func (c *Conf) Require(name string) error {
	key, err := ParseKey(name)
	if err != nil {
		return fmt.Errorf("require: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, registered := c.specs[key]; !registered {
		c.specs[key] = nil
	}

	return nil
}

// Declare registers a batch of (key, spec) pairs in argument order. Key
// positions accept a [Key] or a string in key syntax; spec positions accept
// a [Spec] or nil. An odd argument count or an invalid value in either
// position fails the whole declaration before anything is registered —
// declarations are static code, and a malformed one is expected to be fatal
// to program construction.
func (c *Conf) Declare(pairs ...any) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("declare: %w: got %d arguments", ErrOddDeclaration, len(pairs))
	}

	keys := make([]Key, 0, len(pairs)/2)
	specs := make([]Spec, 0, len(pairs)/2)

	for i := 0; i < len(pairs); i += 2 {
		key, err := keyArgument(pairs[i])
		if err != nil {
			return fmt.Errorf("declare: argument %d: %w", i, err)
		}

		spec, err := specArgument(pairs[i+1])
		if err != nil {
			return fmt.Errorf("declare: argument %d (key %s): %w", i+1, key, err)
		}

		keys = append(keys, key)
		specs = append(specs, spec)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, key := range keys {
		c.specs[key] = specs[i]
	}

	return nil
}

// MustDeclare is like [Conf.Declare] but panics on a malformed declaration.
func (c *Conf) MustDeclare(pairs ...any) {
	if err := c.Declare(pairs...); err != nil {
		panic(err)
	}
}

// Keys returns all registered keys in canonical order.
func (c *Conf) Keys() []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]Key, 0, len(c.specs))
	for key := range c.specs {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	return keys
}

func keyArgument(arg any) (Key, error) {
	switch v := arg.(type) {
	case Key:
		if v.IsZero() {
			return Key{}, fmt.Errorf("%w: zero key", ErrNotAKey)
		}

		return v, nil
	case string:
		return ParseKey(v)
	default:
		return Key{}, fmt.Errorf("%w: %T", ErrNotAKey, arg)
	}
}

func specArgument(arg any) (Spec, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case Spec:
		return v, nil
	case func(any) error:
		return SpecFunc(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotASpec, arg)
	}
}
