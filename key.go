// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package confreg

import (
	"fmt"
	"strings"
)

// Key is a hierarchical configuration identifier composed of a namespace and
// a name, written "namespace/name" (e.g. "app.server/http-port"). The
// namespace is one or more dot-separated segments; segments and the name are
// groups of lower-case words joined by single dashes. A Key is immutable and
// comparable, and is the sole addressing unit across the registry, the store
// and override contexts.
type Key struct {
	// Namespace is the dotted namespace part, e.g. "app.server".
	Namespace string

	// Name is the dashed name part, e.g. "http-port".
	Name string
}

// Substitutions between the internal key syntax and the external
// environment-variable syntax. Decoding must try the longest run first so
// multi-underscore runs are not double-translated.
var (
	encodeReplacer = strings.NewReplacer("/", "___", ".", "__", "-", "_")
	decodeReplacer = strings.NewReplacer("___", "/", "__", ".", "_", "-")
)

// ParseKey parses s as a "namespace/name" key. It returns an error wrapping
// [ErrNotAKey] if s does not follow the key syntax.
func ParseKey(s string) (Key, error) {
	namespace, name, found := strings.Cut(s, "/")
	if !found || strings.Contains(name, "/") {
		return Key{}, fmt.Errorf("%w: %q", ErrNotAKey, s)
	}

	for _, segment := range strings.Split(namespace, ".") {
		if !validWordGroup(segment) {
			return Key{}, fmt.Errorf("%w: %q", ErrNotAKey, s)
		}
	}

	if !validWordGroup(name) {
		return Key{}, fmt.Errorf("%w: %q", ErrNotAKey, s)
	}

	return Key{Namespace: namespace, Name: name}, nil
}

// MustParseKey is like [ParseKey] but panics on a malformed key. It is
// intended for static declarations, where a malformed key is a programming
// error.
func MustParseKey(s string) Key {
	key, err := ParseKey(s)
	if err != nil {
		panic(err)
	}

	return key
}

// String returns the canonical "namespace/name" form of the key.
func (k Key) String() string {
	return k.Namespace + "/" + k.Name
}

// IsZero reports whether k is the zero Key. The zero Key is not a valid key.
func (k Key) IsZero() bool {
	return k.Namespace == "" && k.Name == ""
}

// MarshalText implements encoding.TextMarshaler, so keys render canonically
// when used as JSON object keys (e.g. in snapshots).
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	key, err := ParseKey(string(text))
	if err != nil {
		return err
	}

	*k = key
	return nil
}

// EncodeName returns the external environment-variable name for key: the
// namespace separator "/" becomes "___", the sub-namespace separator "."
// becomes "__", the word separator "-" becomes "_", and the result is
// upper-cased. EncodeName and [DecodeName] are inverses on valid keys.
//
// Example: {app.server http-port} -> "APP__SERVER___HTTP_PORT".
func EncodeName(key Key) string {
	return strings.ToUpper(encodeReplacer.Replace(key.String()))
}

// DecodeName decodes an external name (e.g. an environment variable name)
// into a [Key]. It lower-cases the name, replaces "___" with "/", "__" with
// "." and "_" with "-" (longest run first), then parses the result.
//
// The second return value is false when the name has no key mapping; callers
// are expected to skip such entries rather than treat them as errors.
func DecodeName(name string) (Key, bool) {
	key, err := ParseKey(decodeReplacer.Replace(strings.ToLower(name)))
	if err != nil {
		return Key{}, false
	}

	return key, true
}

// validWordGroup reports whether s is one or more non-empty lower-case
// alphanumeric words joined by single dashes.
func validWordGroup(s string) bool {
	for _, word := range strings.Split(s, "-") {
		if word == "" {
			return false
		}

		for _, r := range word {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
				return false
			}
		}
	}

	return true
}
