package sim

import (
	"cmp"
	"log/slog"
	"math"
	"slices"

	"github.com/udisondev/npcai/internal/ai"
)

// ClipEvent is a named event authored at Time seconds into a clip.
type ClipEvent struct {
	Time float64 `yaml:"time"`
	Name string  `yaml:"name"`
}

// Clip is a one-shot animation started by a trigger.
type Clip struct {
	Name   string      `yaml:"name"`
	Length float64     `yaml:"length"`
	Events []ClipEvent `yaml:"events"`
}

// DefaultAttackClip is a 1.5 s swing that is dangerous between 0.4 s and 0.8 s.
func DefaultAttackClip() Clip {
	return Clip{
		Name:   "attack",
		Length: 1.5,
		Events: []ClipEvent{
			{Time: 0.4, Name: ai.EventStartDamageWindow},
			{Time: 0.8, Name: ai.EventEndDamageWindow},
		},
	}
}

// Animator is a minimal animation state machine: damped float parameters,
// trigger-started clips and clip events dispatched to bound handlers.
type Animator struct {
	floats   map[string]float64
	clips    map[string]Clip // trigger → clip
	handlers map[string][]func()

	pending  []string
	playing  *Clip
	clipTime float64
	nextEvt  int
}

// NewAnimator creates an animator without clips.
func NewAnimator() *Animator {
	return &Animator{
		floats:   make(map[string]float64),
		clips:    make(map[string]Clip),
		handlers: make(map[string][]func()),
	}
}

// AddClip binds clip to trigger. Events are sorted by time.
func (a *Animator) AddClip(trigger string, clip Clip) {
	clip.Events = slices.Clone(clip.Events)
	slices.SortStableFunc(clip.Events, func(x, y ClipEvent) int {
		return cmp.Compare(x.Time, y.Time)
	})
	a.clips[trigger] = clip
}

// SetFloat moves parameter name toward value with exponential damping.
func (a *Animator) SetFloat(name string, value, dampTime, dt float64) {
	if dampTime <= 0 || dt <= 0 {
		a.floats[name] = value
		return
	}
	cur := a.floats[name]
	a.floats[name] = cur + (value-cur)*(1-math.Exp(-dt/dampTime))
}

// Float returns the current value of parameter name.
func (a *Animator) Float(name string) float64 {
	return a.floats[name]
}

// FireTrigger queues a trigger; it is consumed on the next Advance.
func (a *Animator) FireTrigger(name string) {
	a.pending = append(a.pending, name)
}

// On registers fn for clip event name.
func (a *Animator) On(event string, fn func()) {
	a.handlers[event] = append(a.handlers[event], fn)
}

// Playing returns the name of the clip being played, or "".
func (a *Animator) Playing() string {
	if a.playing == nil {
		return ""
	}
	return a.playing.Name
}

// Advance consumes pending triggers and plays the current clip for dt seconds,
// dispatching events whose time was reached. A new trigger interrupts the
// current clip; its remaining events are dropped.
func (a *Animator) Advance(dt float64) {
	for _, trigger := range a.pending {
		clip, ok := a.clips[trigger]
		if !ok {
			slog.Debug("animator trigger without clip", "trigger", trigger)
			continue
		}
		a.playing = &clip
		a.clipTime = 0
		a.nextEvt = 0
	}
	a.pending = a.pending[:0]

	if a.playing == nil {
		return
	}

	a.clipTime += dt
	for a.nextEvt < len(a.playing.Events) && a.playing.Events[a.nextEvt].Time <= a.clipTime {
		a.dispatch(a.playing.Events[a.nextEvt].Name)
		a.nextEvt++
	}
	if a.clipTime >= a.playing.Length {
		a.playing = nil
	}
}

func (a *Animator) dispatch(event string) {
	for _, fn := range a.handlers[event] {
		fn()
	}
}

var (
	_ ai.Animator    = (*Animator)(nil)
	_ ai.EventBinder = (*Animator)(nil)
)
