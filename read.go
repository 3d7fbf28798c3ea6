package confreg

import (
	"context"
	"fmt"
	"maps"

	"dario.cat/mergo"
)

// Value returns the effective value of key: an override binding carried by
// ctx if one is active for key, otherwise the stored value. The second
// return value is false when the key was never set.
func (c *Conf) Value(ctx context.Context, key Key) (any, bool) {
	if value, ok := frameFrom(ctx).lookup(key); ok {
		return value, true
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.values[key]
	return value, ok
}

// ValueOr returns the effective value of key, or def when the key was never
// set.
func (c *Conf) ValueOr(ctx context.Context, key Key, def any) any {
	if value, ok := c.Value(ctx, key); ok {
		return value
	}

	return def
}

// SourceOf returns the provenance of the effective value of key:
// [SourceOverride] for override-bound keys, otherwise the name of the source
// that last set it. The second return value is false when the key was never
// set.
func (c *Conf) SourceOf(ctx context.Context, key Key) (string, bool) {
	if _, ok := frameFrom(ctx).lookup(key); ok {
		return SourceOverride, true
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	source, ok := c.provenance[key]
	return source, ok
}

// Snapshot returns the full effective configuration: a copy of the store
// shadowed by every override layer carried by ctx, inner layers winning.
// Bindings replace stored values whole, key by key — a collection-valued
// binding is never merged element-wise into the stored collection, so the
// snapshot always agrees with [Conf.Value]. Mutating the returned map does
// not affect the store.
func (c *Conf) Snapshot(ctx context.Context) (map[Key]any, error) {
	c.mu.RLock()
	snapshot := make(map[Key]any, len(c.values))
	err := mergo.Merge(&snapshot, c.values)
	c.mu.RUnlock()

	if err != nil {
		return nil, fmt.Errorf("snapshot: error copying store: %w", err)
	}

	// overlay frames outermost first so inner bindings win
	var chain []*overrideFrame
	for frame := frameFrom(ctx); frame != nil; frame = frame.parent {
		chain = append(chain, frame)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		maps.Copy(snapshot, chain[i].bindings)
	}

	return snapshot, nil
}
