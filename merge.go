// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package confreg

// Well-known source names used in provenance. File-based sources use their
// path as the source name.
const (
	// SourceEnv is the provenance of values merged from the process
	// environment.
	SourceEnv = "environment"
	// SourceProps is the provenance of values merged from the secondary
	// properties table.
	SourceProps = "properties"
	// SourceOverride is the provenance reported for values bound by an
	// active override context.
	SourceOverride = "override"
)

// Merge folds a name-keyed raw source into the store. For each entry the
// external name is decoded per [DecodeName]; entries whose name has no key
// mapping, or whose key was never registered, are dropped. Remaining values
// are coerced against the key's spec and written to the store, overwriting
// any earlier source ("last source wins"), with provenance set to source.
//
// The whole merge is one atomic update: concurrent readers see either none
// or all of the source's entries.
func (c *Conf) Merge(source string, raw map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := 0
	for name, rawValue := range raw {
		key, ok := DecodeName(name)
		if !ok {
			continue
		}

		spec, registered := c.specs[key]
		if !registered {
			c.log.Debug().Str("source", source).Str("name", name).Stringer("key", key).
				Msg("dropping entry for unregistered key")
			continue
		}

		c.values[key] = coerce(spec, rawValue)
		c.provenance[key] = source
		merged++
	}

	c.log.Debug().Str("source", source).Int("entries", len(raw)).Int("merged", merged).
		Msg("merged source")
}

// MergeKeyed folds a pre-keyed source into the store: values are already
// structured literals addressed by [Key], so no name decoding or coercion
// applies, but the same registry filtering does — entries for unregistered
// keys are dropped, never materialized.
func (c *Conf) MergeKeyed(source string, values map[Key]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := 0
	for key, value := range values {
		if _, registered := c.specs[key]; !registered {
			c.log.Debug().Str("source", source).Stringer("key", key).
				Msg("dropping entry for unregistered key")
			continue
		}

		c.values[key] = value
		c.provenance[key] = source
		merged++
	}

	c.log.Debug().Str("source", source).Int("entries", len(values)).Int("merged", merged).
		Msg("merged source")
}
