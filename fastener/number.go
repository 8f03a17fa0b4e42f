package fastener

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func LerpNumber(a, b float64, u float64) float64 {
	return a + (b-a)*u
}

// EqualNumbers treats NaN as equal to itself so a NaN state is not
// rewritten on every assignment.
func EqualNumbers(a, b float64) bool {
	return a == b || math.IsNaN(a) && math.IsNaN(b)
}

// ParseNumber converts numeric kinds and numeric strings to float64.
// Strings that do not parse to a finite number fail with ErrParse.
func ParseNumber(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		s := strings.TrimSpace(v)
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrParse, v)
		}
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("%w: %q is not finite", ErrParse, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: cannot convert %T to a number", ErrParse, v)
	}
}

func numberProperty(cfg PropertyConfig[float64]) PropertyConfig[float64] {
	if cfg.Equal == nil {
		cfg.Equal = EqualNumbers
	}
	if cfg.FromAny == nil {
		cfg.FromAny = ParseNumber
	}
	return cfg
}

// DeclareNumberProperty declares a float64 property that accepts numeric
// strings through SetStateFrom.
func DeclareNumberProperty(name string, cfg PropertyConfig[float64]) *Decl[*Property[float64]] {
	return DeclareProperty(name, numberProperty(cfg))
}

// DeclareNumberAnimator declares a float64 animator that interpolates
// linearly and accepts numeric strings through SetStateFrom.
func DeclareNumberAnimator(name string, cfg AnimatorConfig[float64]) *Decl[*Animator[float64]] {
	cfg.PropertyConfig = numberProperty(cfg.PropertyConfig)
	if cfg.Lerp == nil {
		cfg.Lerp = LerpNumber
	}
	return DeclareAnimator(name, cfg)
}
