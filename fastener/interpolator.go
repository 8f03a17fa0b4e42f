package fastener

// Interpolator produces the values between From and To.
type Interpolator[T any] struct {
	From T
	To   T
	// Lerp blends From and To at u in (0, 1). Without one the interpolator
	// holds From until u reaches 1.
	Lerp func(a, b T, u float64) T
}

func NewInterpolator[T any](from, to T, lerp func(a, b T, u float64) T) *Interpolator[T] {
	return &Interpolator[T]{From: from, To: to, Lerp: lerp}
}

// Evaluate returns the value at progress u, clamped to [From, To].
func (i *Interpolator[T]) Evaluate(u float64) T {
	switch {
	case u >= 1:
		return i.To
	case u <= 0 || i.Lerp == nil:
		return i.From
	default:
		return i.Lerp(i.From, i.To, u)
	}
}
