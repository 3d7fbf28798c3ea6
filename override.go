// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package confreg

import (
	"context"
	"maps"
)

// overrideFrame is one layer of temporary bindings, chained to the frame it
// was created under. Frames travel inside a context.Context, so bindings are
// visible exactly to the call chain that carries the derived context and to
// nothing else.
type overrideFrame struct {
	parent   *overrideFrame
	bindings map[Key]any
}

type overrideContextKey struct{}

// frameFrom extracts the innermost override frame carried by ctx, or nil.
func frameFrom(ctx context.Context) *overrideFrame {
	if ctx == nil {
		return nil
	}

	frame, _ := ctx.Value(overrideContextKey{}).(*overrideFrame)
	return frame
}

// lookup resolves key through the frame chain, innermost first. Safe on a
// nil frame.
func (f *overrideFrame) lookup(key Key) (any, bool) {
	for ; f != nil; f = f.parent {
		if value, ok := f.bindings[key]; ok {
			return value, true
		}
	}

	return nil, false
}

// Override returns a context under which reads of the bound keys resolve to
// bindings instead of the store; unbound keys fall through as usual. The new
// bindings layer on any override already carried by ctx, inner taking
// precedence for overlapping keys.
//
// The registry is re-validated eagerly against the new effective values
// before the context is handed out; on failure Override returns a nil
// context and the [*ValidationError], and the store and any outer overrides
// stay untouched.
//
// Bindings are copied, so the caller's map can be reused. Visibility ends
// when the returned context goes out of scope; nothing is ever written back
// to the store.
func (c *Conf) Override(ctx context.Context, bindings map[Key]any) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	frame := &overrideFrame{
		parent:   frameFrom(ctx),
		bindings: maps.Clone(bindings),
	}

	octx := context.WithValue(ctx, overrideContextKey{}, frame)
	if err := c.Validate(octx); err != nil {
		return nil, err
	}

	return octx, nil
}

// WithOverride runs body under [Conf.Override] bindings. If eager validation
// of the new effective values fails, body is never invoked and the failure
// is returned. On return — normal or panicking — outer visibility is exactly
// what it was before the call, since the bindings live only in the context
// passed to body.
func (c *Conf) WithOverride(ctx context.Context, bindings map[Key]any, body func(context.Context) error) error {
	octx, err := c.Override(ctx, bindings)
	if err != nil {
		return err
	}

	return body(octx)
}
