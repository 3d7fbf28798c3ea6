package confreg

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Spec is a validation predicate associated with one [Key]. Check returns
// nil when the value is acceptable and a descriptive error otherwise; the
// error text becomes the failure message in the aggregate validation error.
type Spec interface {
	Check(value any) error
}

// SpecFunc adapts an ordinary function to the [Spec] interface.
type SpecFunc func(value any) error

// Check implements [Spec].
func (f SpecFunc) Check(value any) error {
	return f(value)
}

// IsString accepts any string value.
func IsString() Spec {
	return SpecFunc(func(value any) error {
		if _, ok := value.(string); !ok {
			return errors.New("must be a string")
		}

		return nil
	})
}

// NonEmpty accepts any non-empty string value.
func NonEmpty() Spec {
	return SpecFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || s == "" {
			return errors.New("must be a non-empty string")
		}

		return nil
	})
}

// IsInt accepts integer values (coerced literals arrive as int64).
func IsInt() Spec {
	return SpecFunc(func(value any) error {
		switch value.(type) {
		case int, int64:
			return nil
		default:
			return errors.New("must be an integer")
		}
	})
}

// IsFloat accepts numeric values, integer or floating point.
func IsFloat() Spec {
	return SpecFunc(func(value any) error {
		switch value.(type) {
		case int, int64, float64:
			return nil
		default:
			return errors.New("must be a number")
		}
	})
}

// IsBool accepts boolean values.
func IsBool() Spec {
	return SpecFunc(func(value any) error {
		if _, ok := value.(bool); !ok {
			return errors.New("must be a boolean")
		}

		return nil
	})
}

// IsDuration accepts a [time.Duration] or a string in time.ParseDuration
// syntax (e.g. "30s", "1h"). Duration values are typically declared as
// strings in config sources and parsed by the consumer.
func IsDuration() Spec {
	return SpecFunc(func(value any) error {
		switch v := value.(type) {
		case time.Duration:
			return nil
		case string:
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("must be a duration (e.g. \"30s\"): %v", err)
			}

			return nil
		default:
			return errors.New("must be a duration (e.g. \"30s\")")
		}
	})
}

// OneOf accepts any value equal to one of the allowed values.
func OneOf(allowed ...any) Spec {
	return SpecFunc(func(value any) error {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}

		return fmt.Errorf("must be one of %v", allowed)
	})
}

// Matches accepts string values matching the given regular expression.
// The pattern must be valid; Matches panics otherwise, since specs are
// static declarations.
func Matches(pattern string) Spec {
	re := regexp.MustCompile(pattern)

	return SpecFunc(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a string matching %q", pattern)
		}

		if !re.MatchString(s) {
			return fmt.Errorf("must match %q", pattern)
		}

		return nil
	})
}

// All accepts values satisfying every given spec.
func All(specs ...Spec) Spec {
	return SpecFunc(func(value any) error {
		for _, spec := range specs {
			if err := spec.Check(value); err != nil {
				return err
			}
		}

		return nil
	})
}
