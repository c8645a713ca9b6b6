package game

import "math"

// Action is one tick of control input from a pilot: thrust and turn rate
// commands plus a fire directive. Commands outside the ship's limits are
// outside the legal vocabulary and make Step fail with InvalidActionError;
// nothing is ever clamped silently.
type Action struct {
	Thrust   float64 // units/s², within [-MaxThrust, MaxThrust]
	TurnRate float64 // degrees/s, within [-MaxTurnRate, MaxTurnRate]
	Fire     bool
}

func (a Action) validate() error {
	if math.IsNaN(a.Thrust) || math.IsInf(a.Thrust, 0) {
		return &InvalidActionError{Reason: "thrust is not a finite number"}
	}
	if math.IsNaN(a.TurnRate) || math.IsInf(a.TurnRate, 0) {
		return &InvalidActionError{Reason: "turn rate is not a finite number"}
	}
	if a.Thrust < -MaxThrust || a.Thrust > MaxThrust {
		return &InvalidActionError{
			Reason: "thrust outside the ship's thrust range",
		}
	}
	if a.TurnRate < -MaxTurnRate || a.TurnRate > MaxTurnRate {
		return &InvalidActionError{
			Reason: "turn rate outside the ship's turn rate range",
		}
	}
	return nil
}
