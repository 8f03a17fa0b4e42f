package fastener

// AnimatorHooks are the transition callbacks of an Animator.
type AnimatorHooks[T any] struct {
	// OnBegin fires when a transition is anchored, with the value it starts from.
	OnBegin func(value T)
	// OnEnd fires when a transition completes, with the final value.
	OnEnd func(value T)
	// OnInterrupt fires once when a new state cuts a running transition
	// short, with the value at the moment it was interrupted.
	OnInterrupt func(value T)

	WillStartTweening func()
	DidStartTweening  func()
	WillStopTweening  func()
	DidStopTweening   func()
}

type AnimatorConfig[T any] struct {
	PropertyConfig[T]

	// Lerp blends two values. Without one, transitions jump to the new
	// state when they complete.
	Lerp func(a, b T, u float64) T
	// Timing is used by Animate and unspecified writes when the animator
	// has no previous timing.
	Timing *Timing
	Events AnimatorHooks[T]
}

// Animator is a Property whose value transitions to each new state over a
// Timing. Transitions advance one step per Recohere, driven by the owner's
// recoherence flush.
type Animator[T any] struct {
	Property[T]

	timing        *Timing
	interpolator  *Interpolator[T]
	lerp          func(a, b T, u float64) T
	defaultTiming *Timing
	events        AnimatorHooks[T]
}

func NewAnimator[T any](owner Context, name string, cfg AnimatorConfig[T]) *Animator[T] {
	a := &Animator[T]{
		lerp:          cfg.Lerp,
		defaultTiming: cfg.Timing,
		events:        cfg.Events,
	}
	a.initProperty(a, owner, name, KindAnimator, cfg.PropertyConfig)
	return a
}

func DeclareAnimator[T any](name string, cfg AnimatorConfig[T]) *Decl[*Animator[T]] {
	return newDecl(name, KindAnimator, cfg.Eager, func(owner Context, name string) *Animator[T] {
		return NewAnimator(owner, name, cfg)
	})
}

// Timing is the window of the current or most recent transition, or nil.
func (a *Animator[T]) Timing() *Timing {
	return a.timing
}

func (a *Animator[T]) Interpolator() *Interpolator[T] {
	return a.interpolator
}

func (a *Animator[T]) Tweening() bool {
	return a.flags&TweeningFlag != 0
}

// Set transitions to state at Extrinsic affinity with the animator's
// previous or default timing.
func (a *Animator[T]) Set(state T) {
	a.SetState(state, nil, Extrinsic)
}

// SetState makes newState the target. With a timing it starts, or
// retargets, a transition from the current value; otherwise the value
// jumps immediately and any running transition is interrupted.
func (a *Animator[T]) SetState(newState T, timing AnyTiming, affinity Affinity) {
	if !a.MinAffinity(affinity) {
		return
	}
	a.retarget(newState, a.resolveTiming(timing))
}

func (a *Animator[T]) SetStateFrom(v any, timing AnyTiming, affinity Affinity) error {
	state, err := a.FromAny(v)
	if err != nil {
		return &Error{Op: "SetState", Name: a.name, Err: err}
	}
	a.SetState(state, timing, affinity)
	return nil
}

// resolveTiming returns the timing of a new transition, or nil for an
// immediate write.
func (a *Animator[T]) resolveTiming(timing AnyTiming) *Timing {
	switch timing := timing.(type) {
	case *Timing:
		if timing != nil {
			return timing
		}
	case TimingFlag:
		if !timing {
			return nil
		}
	}
	if a.timing != nil {
		return a.timing
	}
	return a.defaultTiming
}

func (a *Animator[T]) retarget(newState T, timing *Timing) {
	oldState := a.state
	if a.equal(newState, oldState) {
		return
	}
	if timing == nil {
		interrupted := a.value
		a.timing = nil
		a.interpolator = nil
		a.assignState(newState, oldState, func() {
			a.writeValue(newState)
		})
		if a.Tweening() {
			if a.events.OnInterrupt != nil {
				a.events.OnInterrupt(interrupted)
			}
			a.StopTweening()
		}
		return
	}

	a.timing = timing
	a.interpolator = NewInterpolator(a.value, newState, a.lerp)
	if a.Tweening() {
		a.flags |= DivergedFlag | InterruptFlag
	} else {
		a.flags |= DivergedFlag
	}
	a.assignState(newState, oldState, nil)
	a.StartTweening()
}

func (a *Animator[T]) StartTweening() {
	if a.Tweening() {
		return
	}
	if a.events.WillStartTweening != nil {
		a.events.WillStartTweening()
	}
	a.flags |= TweeningFlag
	if a.flags&DecoherentFlag == 0 {
		a.Decohere()
	}
	for _, sub := range a.SubFasteners() {
		if sub, ok := sub.(tweener); ok && sub.Inherited() && sub.Affinity() <= a.Affinity() {
			sub.StartTweening()
		}
	}
	if a.events.DidStartTweening != nil {
		a.events.DidStartTweening()
	}
}

func (a *Animator[T]) StopTweening() {
	if !a.Tweening() {
		return
	}
	if a.events.WillStopTweening != nil {
		a.events.WillStopTweening()
	}
	a.flags &^= TweeningFlag | DivergedFlag | InterruptFlag
	// Subs with a queue settle in TweenInherited; the rest have no later tick.
	for _, sub := range a.SubFasteners() {
		if sub, ok := sub.(tweener); ok && sub.Inherited() {
			if _, queued := sub.Owner().(Decoherer); !queued {
				sub.StopTweening()
			}
		}
	}
	if a.events.DidStopTweening != nil {
		a.events.DidStopTweening()
	}
}

// Tween advances the transition to time t.
func (a *Animator[T]) Tween(t float64) {
	oldValue := a.value

	timing := a.timing
	if timing == nil {
		timing = NewTiming(Linear, 0).WithDomain(t, t)
		a.timing = timing
	}
	interpolator := a.interpolator
	if interpolator == nil {
		interpolator = NewInterpolator(oldValue, a.state, a.lerp)
		a.interpolator = interpolator
	}

	if a.flags&InterruptFlag != 0 {
		a.flags &^= InterruptFlag
		if a.events.OnInterrupt != nil {
			a.events.OnInterrupt(oldValue)
		}
	}
	if a.flags&DivergedFlag != 0 {
		a.flags &^= DivergedFlag
		if !a.equal(a.state, oldValue) {
			timing = timing.WithDomain(t, t+timing.Duration)
		} else {
			// Retargeting to the current value completes on this tick.
			timing = timing.WithDomain(t-timing.Duration, t)
		}
		a.timing = timing
		if a.events.OnBegin != nil {
			a.events.OnBegin(oldValue)
		}
	}

	u := timing.Evaluate(t)
	newValue := interpolator.Evaluate(u)
	a.writeValue(newValue)

	switch {
	case u < 1:
		if a.Tweening() {
			a.Decohere()
		}
	case a.Tweening():
		a.interpolator = nil
		a.StopTweening()
		if a.events.OnEnd != nil {
			a.events.OnEnd(newValue)
		}
	default:
		a.interpolator = nil
	}
}

// TweenInherited follows the super animator for one tick: it mirrors its
// state and value and settles once the super animator does.
func (a *Animator[T]) TweenInherited(t float64) {
	superFastener := a.superFastener
	if superFastener == nil {
		a.StopTweening()
		return
	}
	a.mirror(superFastener)
	if super, ok := superFastener.(tweener); ok && super.Tweening() {
		a.Decohere()
	} else {
		a.StopTweening()
	}
}

func (a *Animator[T]) onRecohere(t float64) {
	if a.Inherited() {
		a.TweenInherited(t)
	} else if a.Tweening() {
		a.Tween(t)
	}
}

func (a *Animator[T]) onSetInherited(inherited bool, superFastener Fastener) {
	if !inherited {
		a.StopTweening()
		return
	}
	// The super animator takes over; the animator's own transition is dropped.
	a.timing = nil
	a.interpolator = nil
	a.flags &^= DivergedFlag | InterruptFlag
	a.mirror(superFastener)
	if super, ok := superFastener.(tweener); ok && super.Tweening() {
		a.StartTweening()
	} else {
		a.StopTweening()
	}
}

func (a *Animator[T]) superChanged() {
	if !a.Inherited() {
		return
	}
	if _, ok := a.owner.(Decoherer); ok {
		a.Decohere()
		return
	}
	a.mirror(a.superFastener)
	if super, ok := a.superFastener.(tweener); !ok || !super.Tweening() {
		a.StopTweening()
	}
}

// onMount queues a transition started while unmounted.
func (a *Animator[T]) onMount() {
	a.Base.onMount()
	if a.Tweening() {
		a.Decohere()
	}
}

func (a *Animator[T]) onUnmount() {
	a.StopTweening()
	a.Base.onUnmount()
}

type tweener interface {
	Fastener
	Tweening() bool
	StartTweening()
	StopTweening()
}
