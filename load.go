// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package confreg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultMainFileKey is the key whose encoded external name (CONF___FILE)
// names the optional main config file in the environment.
var DefaultMainFileKey = Key{Namespace: "conf", Name: "file"}

// Default local config file paths, loaded in order before the main file.
var defaultLocalFiles = []string{"conf.json", "conf.local.json"}

type loadConfig struct {
	localFiles  []string
	mainFileKey Key
	environ     []string
	props       map[string]string
}

// LoadOption configures one [Conf.Load] pass.
type LoadOption func(*loadConfig)

// WithFiles replaces the default local config file paths ("conf.json",
// "conf.local.json"). Files are loaded in argument order; missing files
// contribute nothing.
func WithFiles(paths ...string) LoadOption {
	return func(lc *loadConfig) {
		lc.localFiles = paths
	}
}

// WithMainFileKey replaces [DefaultMainFileKey] as the key whose encoded
// name is looked up in the environment to locate the main config file.
func WithMainFileKey(key Key) LoadOption {
	return func(lc *loadConfig) {
		lc.mainFileKey = key
	}
}

// WithEnviron replaces the process environment with an explicit "NAME=value"
// list. Intended for tests.
func WithEnviron(environ []string) LoadOption {
	return func(lc *loadConfig) {
		lc.environ = environ
	}
}

// WithProperties supplies the secondary properties table, merged after the
// environment with the same name decoding and registry filtering.
func WithProperties(props map[string]string) LoadOption {
	return func(lc *loadConfig) {
		lc.props = props
	}
}

// Load performs the fixed-order load into the store and then validates every
// registered key:
//
//  1. first local file
//  2. second local file
//  3. main file, if the environment names one via the main-file key
//  4. process environment
//  5. properties table, if supplied
//
// Later sources overwrite earlier ones key-by-key. A file that does not
// exist contributes nothing; a file that exists but cannot be parsed aborts
// the load with an error wrapping [ErrMalformedSource]. A validation failure
// is returned as a [*ValidationError] carrying every failing key; callers
// are expected to treat it as fatal to startup.
func (c *Conf) Load(opts ...LoadOption) error {
	lc := &loadConfig{
		localFiles:  defaultLocalFiles,
		mainFileKey: DefaultMainFileKey,
		environ:     os.Environ(),
	}

	for _, opt := range opts {
		opt(lc)
	}

	for _, path := range lc.localFiles {
		if err := c.mergeFile(path); err != nil {
			return fmt.Errorf("load: %w", err)
		}
	}

	envMap := environToMap(lc.environ)

	if path := envMap[EncodeName(lc.mainFileKey)]; path != "" {
		if err := c.mergeFile(path); err != nil {
			return fmt.Errorf("load: main file: %w", err)
		}
	}

	c.Merge(SourceEnv, envMap)

	if len(lc.props) > 0 {
		c.Merge(SourceProps, lc.props)
	}

	if err := c.Validate(context.Background()); err != nil {
		return err
	}

	c.log.Info().Int("keys", len(c.Keys())).Msg("configuration loaded")
	return nil
}

// mergeFile reads path as a flat JSON mapping and folds it into the store
// under the path as source name. A missing file is skipped.
func (c *Conf) mergeFile(path string) error {
	values, err := readFileSource(path)
	if errors.Is(err, os.ErrNotExist) {
		c.log.Debug().Str("path", path).Msg("config file absent, skipping")
		return nil
	}

	if err != nil {
		return err
	}

	c.MergeKeyed(path, values)
	return nil
}

// readFileSource parses a config file: a single flat JSON object mapping
// "namespace/name" keys to literal values. Entries whose key does not parse
// are dropped, matching the registry filtering applied on merge.
func readFileSource(path string) (map[Key]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var flat map[string]any
	if err := dec.Decode(&flat); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSource, path, err)
	}

	values := make(map[Key]any, len(flat))
	for name, value := range flat {
		key, err := ParseKey(name)
		if err != nil {
			continue
		}

		values[key] = normalizeLiteral(value)
	}

	return values, nil
}

// environToMap splits "NAME=value" entries into a map, keeping the first
// occurrence of duplicated names.
func environToMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, entry := range environ {
		name, value, found := strings.Cut(entry, "=")
		if !found || name == "" {
			continue
		}

		if _, dup := m[name]; !dup {
			m[name] = value
		}
	}

	return m
}
