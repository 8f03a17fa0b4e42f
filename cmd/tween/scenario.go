package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/delaneyj/fasteners/component"
	"github.com/delaneyj/fasteners/fastener"
	"gopkg.in/yaml.v3"
)

var errInvalidScenario = errors.New("invalid scenario")

// Scenario is a scripted sequence of writes to a single number animator.
type Scenario struct {
	Name     string  `yaml:"name"`
	Initial  float64 `yaml:"initial"`
	Duration float64 `yaml:"duration"`
	Easing   string  `yaml:"easing"`
	Step     float64 `yaml:"step"`
	Until    float64 `yaml:"until"`
	Writes   []Write `yaml:"writes"`
}

// Write sets the animator's state at tick At. Without an explicit duration
// or easing the animator reuses its previous timing.
type Write struct {
	At        float64  `yaml:"at"`
	State     any      `yaml:"state"`
	Duration  *float64 `yaml:"duration,omitempty"`
	Easing    string   `yaml:"easing,omitempty"`
	Immediate bool     `yaml:"immediate,omitempty"`
	Affinity  string   `yaml:"affinity,omitempty"`
}

// Frame is the animator as observed after the flush at T.
type Frame struct {
	T        float64
	State    float64
	Value    float64
	Progress float64
	Tweening bool
	Events   []string
}

func LoadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s := &Scenario{}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(path, ".yaml")
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) normalize() error {
	if s.Name == "" {
		s.Name = "scenario"
	}
	if s.Step == 0 {
		s.Step = 100
	}
	if s.Step < 0 || s.Duration < 0 || s.Until < 0 {
		return fmt.Errorf("%w %q: step, duration and until must not be negative", errInvalidScenario, s.Name)
	}
	if _, err := parseEasing(s.Easing); err != nil {
		return err
	}
	slices.SortStableFunc(s.Writes, func(a, b Write) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		default:
			return 0
		}
	})
	if s.Until == 0 {
		for _, w := range s.Writes {
			d := s.Duration
			if w.Duration != nil {
				d = *w.Duration
			}
			s.Until = math.Max(s.Until, w.At+d)
		}
	}
	return nil
}

// Ticks is the number of frames Run produces.
func (s *Scenario) Ticks() int {
	return int(s.Until/s.Step) + 1
}

// Run plays the scenario against a freshly mounted animator, flushing once
// per step from 0 through Until.
func (s *Scenario) Run() ([]Frame, error) {
	easing, err := parseEasing(s.Easing)
	if err != nil {
		return nil, err
	}

	var events []string
	decl := fastener.DeclareNumberAnimator("value", fastener.AnimatorConfig[float64]{
		PropertyConfig: fastener.PropertyConfig[float64]{Initial: s.Initial},
		Timing:         fastener.NewTiming(easing, s.Duration),
		Events: fastener.AnimatorHooks[float64]{
			OnBegin:     func(v float64) { events = append(events, "begin@"+formatNumber(v)) },
			OnEnd:       func(v float64) { events = append(events, "end@"+formatNumber(v)) },
			OnInterrupt: func(v float64) { events = append(events, "interrupt@"+formatNumber(v)) },
		},
	})
	node := component.New(fastener.NewClass("tween", nil, decl), s.Name)
	node.Mount()
	defer node.Unmount()
	a := decl.Get(node)

	writes := s.Writes
	frames := make([]Frame, 0, s.Ticks())
	for i := 0; ; i++ {
		t := float64(i) * s.Step
		if t > s.Until {
			break
		}
		for len(writes) > 0 && writes[0].At <= t {
			w := writes[0]
			writes = writes[1:]
			accepted, err := s.apply(a, w)
			if err != nil {
				return nil, fmt.Errorf("write at %v: %w", w.At, err)
			}
			if accepted {
				events = append(events, fmt.Sprintf("set %v", w.State))
			} else {
				events = append(events, fmt.Sprintf("reject %v", w.State))
			}
		}
		node.Recohere(t)
		frames = append(frames, Frame{
			T:        t,
			State:    a.State(),
			Value:    a.Value(),
			Progress: progress(a, t),
			Tweening: a.Tweening(),
			Events:   events,
		})
		events = nil
	}
	return frames, nil
}

// apply reports whether the write passed the animator's affinity gate.
func (s *Scenario) apply(a *fastener.Animator[float64], w Write) (bool, error) {
	affinity := fastener.Extrinsic
	if w.Affinity != "" {
		var err error
		if affinity, err = fastener.ParseAffinity(w.Affinity); err != nil {
			return false, err
		}
	}
	if affinity != fastener.Reflexive && !a.HasAffinity(affinity) {
		return false, nil
	}

	var timing fastener.AnyTiming
	switch {
	case w.Immediate:
		timing = fastener.Immediate
	case w.Duration != nil || w.Easing != "":
		name := w.Easing
		if name == "" {
			name = s.Easing
		}
		easing, err := parseEasing(name)
		if err != nil {
			return false, err
		}
		duration := s.Duration
		if w.Duration != nil {
			duration = *w.Duration
		}
		timing = fastener.NewTiming(easing, duration)
	}
	if err := a.SetStateFrom(w.State, timing, affinity); err != nil {
		return false, err
	}
	return true, nil
}

func progress(a *fastener.Animator[float64], t float64) float64 {
	timing := a.Timing()
	if timing == nil {
		return 1
	}
	return math.Max(0, math.Min(1, timing.Progress(t)))
}

var easings = map[string]fastener.Easing{
	"":            fastener.Linear,
	"linear":      fastener.Linear,
	"ease":        fastener.Ease,
	"ease-in":     fastener.EaseIn,
	"ease-out":    fastener.EaseOut,
	"ease-in-out": fastener.EaseInOut,
}

func parseEasing(name string) (fastener.Easing, error) {
	easing, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown easing %q", errInvalidScenario, name)
	}
	return easing, nil
}
