package lang

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric value produced by evaluation: either a fixed-width
// integer or a floating-point number. The zero Number is the integer 0.
type Number struct {
	f     float64
	i     int64
	float bool
}

// Int returns an integer Number.
func Int(v int64) Number { return Number{i: v} }

// Float returns a floating-point Number.
func Float(v float64) Number { return Number{f: v, float: true} }

// ParseNumber parses s as an integer if possible, otherwise as a float.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, ErrInvalidNumber.Wrap(err).
			With(slog.String("value", s))
	}

	return Float(f), nil
}

// IsInt reports whether n holds an integer.
func (n Number) IsInt() bool { return !n.float }

// Int64 returns n as an integer, truncating floats toward zero.
func (n Number) Int64() int64 {
	if n.float {
		return int64(n.f)
	}

	return n.i
}

// Float64 returns n as a float.
func (n Number) Float64() float64 {
	if n.float {
		return n.f
	}

	return float64(n.i)
}

// IsZero reports whether n is numerically zero.
func (n Number) IsZero() bool {
	if n.float {
		return n.f == 0
	}

	return n.i == 0
}

// Equal reports whether n and m are numerically equal. Integers compare
// exactly; any comparison involving a float compares as floats.
func (n Number) Equal(m Number) bool {
	if !n.float && !m.float {
		return n.i == m.i
	}

	return n.Float64() == m.Float64()
}

// isFinite reports whether n is an integer or a float that is neither
// infinite nor NaN.
func (n Number) isFinite() bool {
	return !n.float || !math.IsInf(n.f, 0) && !math.IsNaN(n.f)
}

// Native returns n as an int64 or float64.
func (n Number) Native() any {
	if n.float {
		return n.f
	}

	return n.i
}

// String returns the canonical text of n. Floats always carry a fractional
// part ("2.0", not "2") so the kind survives rendering.
func (n Number) String() string {
	if n.float {
		return formatFloat(n.f)
	}

	return strconv.FormatInt(n.i, 10)
}

// LogValue implements slog.LogValuer.
func (n Number) LogValue() slog.Value {
	if n.float {
		return slog.Float64Value(n.f)
	}

	return slog.Int64Value(n.i)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}

	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
