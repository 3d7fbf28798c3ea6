package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"

	confreg "github.com/MKhiriev/go-conf-registry"
)

// schemaDescriptor is the parameterized form of a spec descriptor.
type schemaDescriptor struct {
	OneOf   []json.RawMessage `json:"one-of"`
	Matches *string           `json:"matches"`
}

// schemaPairs reads a schema file — a flat JSON object mapping keys to spec
// descriptors — and returns the (key, spec) argument list for
// [confreg.Conf.Declare], in canonical key order.
func schemaPairs(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("schema %s is not a flat JSON object: %w", path, err)
	}

	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]any, 0, 2*len(flat))
	for _, name := range names {
		spec, err := specFromDescriptor(flat[name])
		if err != nil {
			return nil, fmt.Errorf("schema key %q: %w", name, err)
		}

		pairs = append(pairs, name, spec)
	}

	return pairs, nil
}

// specFromDescriptor interprets one schema descriptor:
//
//	null                   required, unconstrained
//	"string"               confreg.IsString
//	"non-empty"            confreg.NonEmpty
//	"int"                  confreg.IsInt
//	"float"                confreg.IsFloat
//	"bool"                 confreg.IsBool
//	"duration"             confreg.IsDuration
//	{"one-of": [v, ...]}   confreg.OneOf
//	{"matches": "re"}      confreg.Matches
func specFromDescriptor(raw json.RawMessage) (confreg.Spec, error) {
	if string(raw) == "null" {
		return nil, nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		switch name {
		case "string":
			return confreg.IsString(), nil
		case "non-empty":
			return confreg.NonEmpty(), nil
		case "int":
			return confreg.IsInt(), nil
		case "float":
			return confreg.IsFloat(), nil
		case "bool":
			return confreg.IsBool(), nil
		case "duration":
			return confreg.IsDuration(), nil
		default:
			return nil, fmt.Errorf("unknown spec name %q", name)
		}
	}

	var desc schemaDescriptor
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("unrecognized spec descriptor %s", raw)
	}

	switch {
	case len(desc.OneOf) > 0:
		allowed := make([]any, 0, len(desc.OneOf))
		for _, elem := range desc.OneOf {
			value, ok := confreg.ParseLiteral(string(elem))
			if !ok {
				return nil, fmt.Errorf("invalid one-of element %s", elem)
			}

			allowed = append(allowed, value)
		}

		return confreg.OneOf(allowed...), nil
	case desc.Matches != nil:
		if _, err := regexp.Compile(*desc.Matches); err != nil {
			return nil, fmt.Errorf("invalid matches pattern %q: %w", *desc.Matches, err)
		}

		return confreg.Matches(*desc.Matches), nil
	default:
		return nil, fmt.Errorf("unrecognized spec descriptor %s", raw)
	}
}
