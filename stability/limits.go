package stability

import "math"

// Level is the traffic-light classification of an index value.
type Level int

const (
	LevelUndefined Level = iota
	LevelOK
	LevelWarn
	LevelAlarm
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelOK:
		return "ok"
	case LevelWarn:
		return "warn"
	case LevelAlarm:
		return "alarm"
	default:
		return "undefined"
	}
}

// Limits define the traffic-light thresholds for one index.
type Limits struct {
	Target float64
	Warn   float64
	Alarm  float64
}

// SigmaStabLimits returns the standard σ-STAB thresholds.
func SigmaStabLimits() Limits {
	return Limits{Target: 1.0, Warn: 1.2, Alarm: 1.5}
}

// MuStabLimits returns the standard μ-STAB thresholds.
func MuStabLimits() Limits {
	return Limits{Target: 0.0, Warn: 0.3, Alarm: 0.5}
}

// Classify maps an index value onto the traffic-light scale.
func (l Limits) Classify(v float64) Level {
	switch {
	case math.IsNaN(v):
		return LevelUndefined
	case v >= l.Alarm:
		return LevelAlarm
	case v >= l.Warn:
		return LevelWarn
	default:
		return LevelOK
	}
}
