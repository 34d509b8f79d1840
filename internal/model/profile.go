package model

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is returned by BehaviorProfile.Validate.
var ErrInvalidProfile = errors.New("invalid behavior profile")

// BehaviorProfile holds the tunable thresholds of an enemy agent.
// All distances are in world units, speeds in units/s, durations in seconds.
type BehaviorProfile struct {
	SightRange         float64 `yaml:"sight_range"`
	StopChasingRange   float64 `yaml:"stop_chasing_range"`
	AttackRange        float64 `yaml:"attack_range"`
	WalkSpeed          float64 `yaml:"walk_speed"`
	ChaseSpeed         float64 `yaml:"chase_speed"`
	PatrolWait         float64 `yaml:"patrol_wait"`
	SearchWait         float64 `yaml:"search_wait"`
	SearchNearbyRadius float64 `yaml:"search_nearby_radius"`
	AttackCooldown     float64 `yaml:"attack_cooldown"` // should match the attack clip length
	AttackDamage       int32   `yaml:"attack_damage"`
	FacingRate         float64 `yaml:"facing_rate"` // blend factor per second
}

// DefaultBehaviorProfile returns the stock melee enemy profile.
func DefaultBehaviorProfile() BehaviorProfile {
	return BehaviorProfile{
		SightRange:         10,
		StopChasingRange:   15,
		AttackRange:        2,
		WalkSpeed:          2,
		ChaseSpeed:         4.8,
		PatrolWait:         4,
		SearchWait:         3,
		SearchNearbyRadius: 10,
		AttackCooldown:     1.5,
		AttackDamage:       10,
		FacingRate:         5,
	}
}

// Validate checks that all ranges, speeds and durations are usable.
func (p BehaviorProfile) Validate() error {
	switch {
	case p.SightRange <= 0:
		return fmt.Errorf("%w: sight_range must be positive, got %v", ErrInvalidProfile, p.SightRange)
	case p.StopChasingRange < p.SightRange:
		return fmt.Errorf("%w: stop_chasing_range %v is below sight_range %v", ErrInvalidProfile, p.StopChasingRange, p.SightRange)
	case p.AttackRange < 0:
		return fmt.Errorf("%w: attack_range must not be negative, got %v", ErrInvalidProfile, p.AttackRange)
	case p.WalkSpeed <= 0 || p.ChaseSpeed <= 0:
		return fmt.Errorf("%w: walk_speed and chase_speed must be positive", ErrInvalidProfile)
	case p.PatrolWait < 0 || p.SearchWait < 0 || p.AttackCooldown < 0:
		return fmt.Errorf("%w: wait and cooldown durations must not be negative", ErrInvalidProfile)
	case p.SearchNearbyRadius <= 0:
		return fmt.Errorf("%w: search_nearby_radius must be positive, got %v", ErrInvalidProfile, p.SearchNearbyRadius)
	case p.AttackDamage < 0:
		return fmt.Errorf("%w: attack_damage must not be negative, got %d", ErrInvalidProfile, p.AttackDamage)
	case p.FacingRate <= 0:
		return fmt.Errorf("%w: facing_rate must be positive, got %v", ErrInvalidProfile, p.FacingRate)
	}
	return nil
}
