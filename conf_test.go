package confreg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Declare ───────────────────────────────────────────────────────────────────

// TestDeclare_RegistersPairs verifies that a batch declaration registers
// every (key, spec) pair.
func TestDeclare_RegistersPairs(t *testing.T) {
	c := New()

	err := c.Declare(
		"app.server/http-port", IsInt(),
		"app.server/domain", NonEmpty(),
		MustParseKey("app/mode"), nil,
	)
	require.NoError(t, err)

	keys := c.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, "app.server/domain", keys[0].String())
	assert.Equal(t, "app.server/http-port", keys[1].String())
	assert.Equal(t, "app/mode", keys[2].String())
}

// TestDeclare_OddArgumentCount verifies that an odd argument count fails the
// declaration with ErrOddDeclaration.
func TestDeclare_OddArgumentCount(t *testing.T) {
	c := New()

	err := c.Declare("app/mode", IsString(), "app/extra")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOddDeclaration)
	assert.Empty(t, c.Keys())
}

// TestDeclare_NonKeyInKeyPosition verifies that a non-key value in a key
// position fails with ErrNotAKey.
func TestDeclare_NonKeyInKeyPosition(t *testing.T) {
	c := New()

	err := c.Declare(42, IsInt())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAKey)

	err = c.Declare("not a key", IsInt())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAKey)

	err = c.Declare(Key{}, IsInt())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAKey)
}

// TestDeclare_NonSpecInSpecPosition verifies that a non-spec value in a spec
// position fails with ErrNotASpec.
func TestDeclare_NonSpecInSpecPosition(t *testing.T) {
	c := New()

	err := c.Declare("app/mode", "is a string")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotASpec)
}

// TestDeclare_AllOrNothing verifies that a failing declaration registers no
// keys at all, even when earlier pairs were valid.
func TestDeclare_AllOrNothing(t *testing.T) {
	c := New()

	err := c.Declare(
		"app/mode", IsString(),
		"bad key", IsInt(),
	)
	require.Error(t, err)
	assert.Empty(t, c.Keys())
}

// TestDeclare_PlainFuncAsSpec verifies that a bare func(any) error is
// accepted in a spec position.
func TestDeclare_PlainFuncAsSpec(t *testing.T) {
	c := New()

	err := c.Declare("app/mode", func(any) error { return nil })
	require.NoError(t, err)
	assert.Len(t, c.Keys(), 1)
}

// TestMustDeclare_PanicsOnMalformedDeclaration verifies the panicking
// variant used for static declarations.
func TestMustDeclare_PanicsOnMalformedDeclaration(t *testing.T) {
	c := New()

	assert.Panics(t, func() { c.MustDeclare("only-a-key/alone") })
	assert.NotPanics(t, func() { c.MustDeclare("app/mode", IsString()) })
}

// ── Register / Require ────────────────────────────────────────────────────────

// TestRegister_LastDeclarationWins verifies that re-registration overwrites
// the prior spec for the key.
func TestRegister_LastDeclarationWins(t *testing.T) {
	c := New()
	key := MustParseKey("app.server/http-port")

	c.Register(key, IsString())
	c.Register(key, IsInt())

	c.MergeKeyed("test", map[Key]any{key: int64(8080)})
	assert.NoError(t, c.Validate(context.Background()))

	c.MergeKeyed("test", map[Key]any{key: "not-a-number"})
	assert.Error(t, c.Validate(context.Background()))
}

// TestRegister_IdempotentUnderRepeatedRegistration verifies that repeating
// the identical registration changes nothing observable.
func TestRegister_IdempotentUnderRepeatedRegistration(t *testing.T) {
	c := New()
	key := MustParseKey("app/mode")
	spec := IsString()

	c.Register(key, spec)
	c.Register(key, spec)

	assert.Len(t, c.Keys(), 1)
}

// TestRequire_TracksKeyWithoutSpec verifies that a required key with no spec
// is presence-checked only.
func TestRequire_TracksKeyWithoutSpec(t *testing.T) {
	c := New()
	require.NoError(t, c.Require("app/owner"))

	// absent: validation must flag it
	err := c.Validate(context.Background())
	require.Error(t, err)

	// present with an arbitrary shape: no spec, so anything passes
	c.MergeKeyed("test", map[Key]any{MustParseKey("app/owner"): 12345})
	assert.NoError(t, c.Validate(context.Background()))
}

// TestRequire_KeepsExistingSpec verifies that requiring an already
// registered key does not discard its spec: the value's shape is still
// checked.
func TestRequire_KeepsExistingSpec(t *testing.T) {
	c := New()
	key := MustParseKey("app.server/http-port")

	c.Register(key, IsInt())
	require.NoError(t, c.Require("app.server/http-port"))

	c.Merge(SourceEnv, map[string]string{"APP__SERVER___HTTP_PORT": "not-a-number"})

	err := c.Validate(context.Background())
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0].Reason, "must be an integer")

	// and a subsequent Register may still replace the spec as usual
	c.Register(key, nil)
	assert.NoError(t, c.Validate(context.Background()))
}

// TestRequire_MalformedKey verifies that Require fails only on malformed
// input.
func TestRequire_MalformedKey(t *testing.T) {
	c := New()

	err := c.Require("not a key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAKey)
}
