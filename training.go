package workout

import (
	"errors"
	"fmt"
	"math"
)

const (
	metersPerKM    = 1000.0
	minutesPerHour = 60.0
	cmPerMeter     = 100.0

	stepLengthM   = 0.65
	strokeLengthM = 1.38

	// one second
	minDurationHours = 1.0 / 3600
)

// Running calorie coefficients.
const (
	runSpeedMultiplier = 18.0
	runSpeedShift      = 1.79
)

// Sports walking calorie coefficients.
const (
	walkWeightMultiplier      = 0.035
	walkSpeedHeightMultiplier = 0.029
	kmhToMps                  = 0.278
)

// Swimming calorie coefficients.
const (
	swimSpeedShift       = 1.1
	swimWeightMultiplier = 2.0
)

var (
	// ErrInvalidInput is returned when a record cannot produce finite metrics.
	ErrInvalidInput = errors.New("invalid training input")

	// ErrNotImplemented marks a calorie formula missing from a training variant.
	ErrNotImplemented = errors.New("spent calories not implemented")
)

// Training is the capability shared by every workout variant.
type Training interface {
	Name() string
	Distance() float64
	MeanSpeed() float64
	SpentCalories() float64
	ShowTrainingInfo() InfoMessage
}

// Record holds the sensor readings common to every workout.
type Record struct {
	Action        int     `json:"action"`
	DurationHours float64 `json:"duration_hours"`
	WeightKG      float64 `json:"weight_kg"`
}

func (r Record) validate() error {
	if r.Action < 0 {
		return fmt.Errorf("%w: action count %d is negative", ErrInvalidInput, r.Action)
	}
	if !(r.DurationHours > 0) || math.IsInf(r.DurationHours, 0) {
		return fmt.Errorf("%w: duration %v h must be positive", ErrInvalidInput, r.DurationHours)
	}
	if r.DurationHours < minDurationHours {
		return fmt.Errorf("%w: duration %v h is shorter than one second", ErrInvalidInput, r.DurationHours)
	}
	if !(r.WeightKG > 0) || math.IsInf(r.WeightKG, 0) {
		return fmt.Errorf("%w: weight %v kg must be positive", ErrInvalidInput, r.WeightKG)
	}
	return nil
}

// WalkingRecord extends Record with the athlete height.
type WalkingRecord struct {
	Record
	HeightCM int `json:"height_cm"`
}

// SwimmingRecord extends Record with pool geometry.
type SwimmingRecord struct {
	Record
	PoolLengthM int `json:"pool_length_m"`
	PoolCount   int `json:"pool_count"`
}

// training carries the base distance and speed formulas. Variants embed it
// and must provide their own SpentCalories.
type training struct {
	rec        Record
	stepLength float64
}

// Distance is action x step length, in km.
func (t training) Distance() float64 {
	return float64(t.rec.Action) * t.stepLength / metersPerKM
}

// MeanSpeed is distance over duration, in km/h.
func (t training) MeanSpeed() float64 {
	return t.Distance() / t.rec.DurationHours
}

func (t training) SpentCalories() float64 {
	panic(ErrNotImplemented)
}

// checkFinite rejects records whose finite readings still overflow a metric.
func checkFinite(t Training) error {
	metrics := []struct {
		name  string
		value float64
	}{
		{"distance", t.Distance()},
		{"mean speed", t.MeanSpeed()},
		{"calories", t.SpentCalories()},
	}
	for _, m := range metrics {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return fmt.Errorf("%w: %s %s is not finite", ErrInvalidInput, t.Name(), m.name)
		}
	}
	return nil
}

func infoFor(t Training, durationHours float64) InfoMessage {
	return InfoMessage{
		TrainingType: t.Name(),
		Duration:     durationHours,
		Distance:     t.Distance(),
		Speed:        t.MeanSpeed(),
		Calories:     t.SpentCalories(),
	}
}

// Running is a run counted in steps.
type Running struct {
	training
}

// NewRunning validates rec and returns a running calculator.
func NewRunning(rec Record) (*Running, error) {
	if err := rec.validate(); err != nil {
		return nil, err
	}
	r := &Running{training{rec: rec, stepLength: stepLengthM}}
	if err := checkFinite(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Name returns "Running".
func (r *Running) Name() string { return "Running" }

// SpentCalories is (18 x speed + 1.79) x weight / 1000 x minutes.
func (r *Running) SpentCalories() float64 {
	return (runSpeedMultiplier*r.MeanSpeed() + runSpeedShift) *
		r.rec.WeightKG / metersPerKM * r.rec.DurationHours * minutesPerHour
}

// ShowTrainingInfo summarises the run.
func (r *Running) ShowTrainingInfo() InfoMessage {
	return infoFor(r, r.rec.DurationHours)
}

// SportsWalking is a walk counted in steps; calories depend on height.
type SportsWalking struct {
	training
	heightCM int
}

// NewSportsWalking validates rec and returns a walking calculator.
func NewSportsWalking(rec WalkingRecord) (*SportsWalking, error) {
	if err := rec.validate(); err != nil {
		return nil, err
	}
	if rec.HeightCM <= 0 {
		return nil, fmt.Errorf("%w: height %d cm must be positive", ErrInvalidInput, rec.HeightCM)
	}
	w := &SportsWalking{
		training: training{rec: rec.Record, stepLength: stepLengthM},
		heightCM: rec.HeightCM,
	}
	if err := checkFinite(w); err != nil {
		return nil, err
	}
	return w, nil
}

// Name returns "SportsWalking".
func (w *SportsWalking) Name() string { return "SportsWalking" }

// SpentCalories is (0.035 x weight + speed^2 / height x 0.029 x weight) x
// minutes, with speed in m/s and height in m.
func (w *SportsWalking) SpentCalories() float64 {
	speedMps := w.MeanSpeed() * kmhToMps
	heightM := float64(w.heightCM) / cmPerMeter
	return (walkWeightMultiplier*w.rec.WeightKG +
		(speedMps*speedMps/heightM)*walkSpeedHeightMultiplier*w.rec.WeightKG) *
		w.rec.DurationHours * minutesPerHour
}

// ShowTrainingInfo summarises the walk.
func (w *SportsWalking) ShowTrainingInfo() InfoMessage {
	return infoFor(w, w.rec.DurationHours)
}

// Swimming is a pool swim counted in strokes. Mean speed comes from the
// pool geometry, not from the stroke count.
type Swimming struct {
	training
	poolLengthM int
	poolCount   int
}

// NewSwimming validates rec and returns a swimming calculator.
func NewSwimming(rec SwimmingRecord) (*Swimming, error) {
	if err := rec.validate(); err != nil {
		return nil, err
	}
	if rec.PoolLengthM <= 0 {
		return nil, fmt.Errorf("%w: pool length %d m must be positive", ErrInvalidInput, rec.PoolLengthM)
	}
	if rec.PoolCount < 0 {
		return nil, fmt.Errorf("%w: pool count %d is negative", ErrInvalidInput, rec.PoolCount)
	}
	s := &Swimming{
		training:    training{rec: rec.Record, stepLength: strokeLengthM},
		poolLengthM: rec.PoolLengthM,
		poolCount:   rec.PoolCount,
	}
	if err := checkFinite(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns "Swimming".
func (s *Swimming) Name() string { return "Swimming" }

// MeanSpeed is pool length x pool count / 1000 / hours.
func (s *Swimming) MeanSpeed() float64 {
	return float64(s.poolLengthM) * float64(s.poolCount) / metersPerKM / s.rec.DurationHours
}

// SpentCalories is (speed + 1.1) x 2 x weight x hours.
func (s *Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + swimSpeedShift) * swimWeightMultiplier *
		s.rec.WeightKG * s.rec.DurationHours
}

// ShowTrainingInfo summarises the swim.
func (s *Swimming) ShowTrainingInfo() InfoMessage {
	return infoFor(s, s.rec.DurationHours)
}
