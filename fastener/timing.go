package fastener

// Timing is an easing applied over a window of Duration time units. The
// window is anchored with WithDomain; animators anchor it at the tick a
// transition begins.
type Timing struct {
	Easing   Easing
	Duration float64

	t0, t1 float64
}

func NewTiming(easing Easing, duration float64) *Timing {
	return &Timing{Easing: easing, Duration: duration}
}

func (tm *Timing) isAnyTiming() {}

// WithDomain returns a copy of tm anchored to the window [t0, t1].
func (tm *Timing) WithDomain(t0, t1 float64) *Timing {
	c := *tm
	c.t0, c.t1 = t0, t1
	return &c
}

func (tm *Timing) Domain() (t0, t1 float64) {
	return tm.t0, tm.t1
}

// Progress is the linear position of t in the window. It is not clamped. An
// empty window is complete from its end onwards.
func (tm *Timing) Progress(t float64) float64 {
	if tm.t1 <= tm.t0 {
		if t >= tm.t1 {
			return 1
		}
		return 0
	}
	return (t - tm.t0) / (tm.t1 - tm.t0)
}

// Evaluate is the eased progress at t.
func (tm *Timing) Evaluate(t float64) float64 {
	easing := tm.Easing
	if easing == nil {
		easing = Linear
	}
	return easing(tm.Progress(t))
}

// AnyTiming is what Animator.SetState accepts as a transition: a *Timing,
// a TimingFlag, or nil for "whatever the animator used last".
type AnyTiming interface {
	isAnyTiming()
}

type TimingFlag bool

const (
	// Animate reuses the animator's previous or default timing.
	Animate TimingFlag = true
	// Immediate writes the state without a transition.
	Immediate TimingFlag = false
)

func (TimingFlag) isAnyTiming() {}
