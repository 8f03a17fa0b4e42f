package fastener

import (
	"fmt"
	"strings"
)

// Affinity is the precedence of the most recent write to a fastener.
// A write at affinity a is accepted when a >= the fastener's current affinity.
type Affinity uint32

const (
	Transient Affinity = iota
	Inherited
	Intrinsic
	Extrinsic
)

const (
	AffinityShift          = 2
	AffinityMask  Affinity = 1<<AffinityShift - 1

	// Reflexive leaves the current affinity unchanged. It lives outside
	// AffinityMask and is never stored in a fastener's flags.
	Reflexive Affinity = 1 << AffinityShift
)

func (a Affinity) Valid() bool {
	return a&^AffinityMask == 0
}

func (a Affinity) String() string {
	switch a {
	case Transient:
		return "transient"
	case Inherited:
		return "inherited"
	case Intrinsic:
		return "intrinsic"
	case Extrinsic:
		return "extrinsic"
	case Reflexive:
		return "reflexive"
	default:
		return fmt.Sprintf("Affinity(%d)", uint32(a))
	}
}

// ParseAffinity is the inverse of String.
func ParseAffinity(s string) (Affinity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transient":
		return Transient, nil
	case "inherited":
		return Inherited, nil
	case "intrinsic":
		return Intrinsic, nil
	case "extrinsic":
		return Extrinsic, nil
	case "reflexive":
		return Reflexive, nil
	default:
		return 0, fmt.Errorf("%w: unknown affinity %q", ErrParse, s)
	}
}
