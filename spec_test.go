package confreg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestSpecs_Accept verifies the accepting side of each predicate.
func TestSpecs_Accept(t *testing.T) {
	tests := []struct {
		name  string
		spec  Spec
		value any
	}{
		{"string", IsString(), "x"},
		{"non-empty", NonEmpty(), "x"},
		{"int int64", IsInt(), int64(1)},
		{"int int", IsInt(), 1},
		{"float float64", IsFloat(), 1.5},
		{"float int64", IsFloat(), int64(2)},
		{"bool", IsBool(), true},
		{"duration string", IsDuration(), "30s"},
		{"duration typed", IsDuration(), 30 * time.Second},
		{"one-of", OneOf("dev", "prod"), "dev"},
		{"one-of int", OneOf(int64(1), int64(2)), int64(2)},
		{"matches", Matches(`^[a-z]+$`), "abc"},
		{"all", All(IsString(), NonEmpty()), "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.spec.Check(tt.value))
		})
	}
}

// TestSpecs_Reject verifies the rejecting side of each predicate.
func TestSpecs_Reject(t *testing.T) {
	tests := []struct {
		name  string
		spec  Spec
		value any
	}{
		{"string", IsString(), 1},
		{"non-empty empty", NonEmpty(), ""},
		{"non-empty non-string", NonEmpty(), 1},
		{"int string", IsInt(), "1"},
		{"int float", IsInt(), 1.5},
		{"float string", IsFloat(), "1.5"},
		{"bool string", IsBool(), "true"},
		{"duration garbage", IsDuration(), "soon"},
		{"duration non-string", IsDuration(), 30},
		{"one-of", OneOf("dev", "prod"), "test"},
		{"matches non-match", Matches(`^[a-z]+$`), "ABC"},
		{"matches non-string", Matches(`^[a-z]+$`), 7},
		{"all", All(IsString(), NonEmpty()), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.spec.Check(tt.value))
		})
	}
}

// TestMatches_PanicsOnBadPattern verifies that an invalid pattern fails at
// declaration time, not at check time.
func TestMatches_PanicsOnBadPattern(t *testing.T) {
	assert.Panics(t, func() { Matches(`(`) })
}
