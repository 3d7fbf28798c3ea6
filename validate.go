// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package confreg

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ValidationIssue is one record in a [ValidationError]: a registered key
// whose effective value is missing or violates its spec.
type ValidationIssue struct {
	// Key is the failing key.
	Key Key

	// Value is the observed effective value. Meaningless when Absent.
	Value any

	// Absent is true when no source (and no override) set the key.
	Absent bool

	// Reason is the failure message, e.g. "must be an integer".
	Reason string

	// Source is the provenance of the observed value: [SourceEnv],
	// [SourceProps], [SourceOverride] or a file path. Empty when Absent.
	Source string
}

// String renders one error line with its human-readable source attribution.
// Environment- and property-sourced values are attributed by their encoded
// external name, so operators can map the failure back to what they set.
func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s (%s)", i.Key, i.Reason, i.attribution())
}

func (i ValidationIssue) attribution() string {
	switch {
	case i.Absent:
		return "declared, never set"
	case i.Source == SourceEnv:
		return "set by environment variable " + EncodeName(i.Key)
	case i.Source == SourceProps:
		return "set by property " + EncodeName(i.Key)
	case i.Source == SourceOverride:
		return "set by override"
	default:
		return "set by " + i.Source
	}
}

// ValidationError aggregates every failing key found in one validation pass.
// Validation never short-circuits: if two keys fail, the error carries two
// issues.
type ValidationError struct {
	// Issues holds one entry per failing key, in canonical key order.
	Issues []ValidationIssue
}

// Error renders the aggregate as a newline-delimited list, one line per
// failing key.
func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Issues)+1)
	lines = append(lines, fmt.Sprintf("invalid configuration (%d keys):", len(e.Issues)))
	for _, issue := range e.Issues {
		lines = append(lines, issue.String())
	}

	return strings.Join(lines, "\n")
}

// Validate checks every registered key's effective value — override bindings
// from ctx first, then the store — against its spec. Keys registered without
// a spec fail only when absent. All keys are scanned before reporting; a
// non-nil result is always a [*ValidationError] carrying the full list of
// issues.
func (c *Conf) Validate(ctx context.Context) error {
	frame := frameFrom(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var issues []ValidationIssue
	for key, spec := range c.specs {
		value, source, found := c.effectiveLocked(frame, key)
		if !found {
			issues = append(issues, ValidationIssue{
				Key:    key,
				Absent: true,
				Reason: "required value is missing",
			})
			continue
		}

		if spec == nil {
			continue
		}

		if err := spec.Check(value); err != nil {
			issues = append(issues, ValidationIssue{
				Key:    key,
				Value:  value,
				Reason: err.Error(),
				Source: source,
			})
		}
	}

	if len(issues) == 0 {
		return nil
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].Key.String() < issues[j].Key.String()
	})

	return &ValidationError{Issues: issues}
}

// effectiveLocked resolves the effective value and provenance of key under
// the given override frame. Callers must hold at least a read lock.
func (c *Conf) effectiveLocked(frame *overrideFrame, key Key) (any, string, bool) {
	if value, ok := frame.lookup(key); ok {
		return value, SourceOverride, true
	}

	if value, ok := c.values[key]; ok {
		return value, c.provenance[key], true
	}

	return nil, "", false
}
