package ai

// Animation parameter, trigger and event names shared with animation assets.
const (
	ParamSpeed    = "Speed"
	TriggerAttack = "Attack"

	EventStartDamageWindow = "start_damage_window"
	EventEndDamageWindow   = "end_damage_window"
	EventFootstep          = "footstep"
)

// speedDampTime is the damping time constant of the speed parameter, seconds.
const speedDampTime = 0.1

// AnimationHooks are the callbacks the animation system invokes during an attack clip.
type AnimationHooks interface {
	StartDamageWindow()
	EndDamageWindow()
}

// AnimationOutput maps brain signals onto animator parameters.
// A nil animator turns every call into a no-op.
type AnimationOutput struct {
	animator Animator
}

// NewAnimationOutput creates an adapter over animator (may be nil).
func NewAnimationOutput(animator Animator) *AnimationOutput {
	return &AnimationOutput{animator: animator}
}

// CurrentSpeed is 0 while movement is blocked, else the reported velocity magnitude.
func CurrentSpeed(loco Locomotion) float64 {
	if loco.MovementBlocked() {
		return 0
	}
	return loco.Velocity().Length()
}

// PushSpeed sends the current speed as a damped parameter.
func (o *AnimationOutput) PushSpeed(loco Locomotion, dt float64) {
	if o.animator == nil {
		return
	}
	o.animator.SetFloat(ParamSpeed, CurrentSpeed(loco), speedDampTime, dt)
}

// Attack fires the one-shot attack trigger.
func (o *AnimationOutput) Attack() {
	if o.animator == nil {
		return
	}
	o.animator.FireTrigger(TriggerAttack)
}

// BindAnimationEvents registers the damage window hooks (and a no-op footstep
// handler, which walk clips emit) on binder.
func BindAnimationEvents(binder EventBinder, hooks AnimationHooks) {
	if binder == nil || hooks == nil {
		return
	}
	binder.On(EventStartDamageWindow, hooks.StartDamageWindow)
	binder.On(EventEndDamageWindow, hooks.EndDamageWindow)
	binder.On(EventFootstep, func() {})
}
