package workout

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Workout codes reported by the sensor block.
const (
	CodeSwimming = "SWM"
	CodeRunning  = "RUN"
	CodeWalking  = "WLK"
)

var (
	// ErrUnknownWorkout is matched by every UnknownWorkoutError.
	ErrUnknownWorkout = errors.New("unknown workout type")

	// ErrArity is matched by every ArityError.
	ErrArity = errors.New("wrong number of sensor values")
)

// UnknownWorkoutError reports a workout code with no matching calculator.
type UnknownWorkoutError struct {
	Code string
}

func (e *UnknownWorkoutError) Error() string {
	return fmt.Sprintf("unknown workout type %q (expected one of %s)", e.Code, strings.Join(WorkoutCodes(), "|"))
}

func (e *UnknownWorkoutError) Unwrap() error { return ErrUnknownWorkout }

// ArityError reports a sensor package with the wrong number of values.
type ArityError struct {
	Code string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("workout %s expects %d sensor values, got %d", e.Code, e.Want, e.Got)
}

func (e *ArityError) Unwrap() error { return ErrArity }

// Package is one raw sensor reading: a workout code and its positional values.
type Package struct {
	Code string    `json:"code"`
	Data []float64 `json:"data"`
}

type builder struct {
	fields []string
	build  func(v values) (Training, error)
}

var builders = map[string]builder{
	CodeSwimming: {
		fields: []string{"action", "duration_h", "weight_kg", "pool_length_m", "pool_count"},
		build: func(v values) (Training, error) {
			return NewSwimming(SwimmingRecord{
				Record:      v.record(),
				PoolLengthM: v.whole(3),
				PoolCount:   v.whole(4),
			})
		},
	},
	CodeRunning: {
		fields: []string{"action", "duration_h", "weight_kg"},
		build: func(v values) (Training, error) {
			return NewRunning(v.record())
		},
	},
	CodeWalking: {
		fields: []string{"action", "duration_h", "weight_kg", "height_cm"},
		build: func(v values) (Training, error) {
			return NewSportsWalking(WalkingRecord{
				Record:   v.record(),
				HeightCM: v.whole(3),
			})
		},
	},
}

// largest value accepted for a whole-number field
const maxWholeValue = math.MaxInt32

// fields that must carry whole numbers
var integerFields = map[string]bool{
	"action":        true,
	"pool_length_m": true,
	"pool_count":    true,
	"height_cm":     true,
}

type values []float64

func (v values) whole(i int) int { return int(v[i]) }

func (v values) record() Record {
	return Record{Action: v.whole(0), DurationHours: v[1], WeightKG: v[2]}
}

// WorkoutCodes lists the supported workout codes in sorted order.
func WorkoutCodes() []string {
	codes := make([]string, 0, len(builders))
	for code := range builders {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ReadPackage builds the calculator for code from its positional sensor values.
func ReadPackage(code string, data []float64) (Training, error) {
	b, ok := builders[code]
	if !ok {
		return nil, &UnknownWorkoutError{Code: code}
	}
	if len(data) != len(b.fields) {
		return nil, &ArityError{Code: code, Want: len(b.fields), Got: len(data)}
	}
	for i, name := range b.fields {
		x := data[i]
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %s=%v is not finite", ErrInvalidInput, name, x)
		}
		if integerFields[name] && x != math.Trunc(x) {
			return nil, fmt.Errorf("%w: %s=%v must be a whole number", ErrInvalidInput, name, x)
		}
		if integerFields[name] && math.Abs(x) > maxWholeValue {
			return nil, fmt.Errorf("%w: %s=%v is out of range", ErrInvalidInput, name, x)
		}
	}
	t, err := b.build(values(data))
	if err != nil {
		return nil, fmt.Errorf("workout %s: %w", code, err)
	}
	return t, nil
}

// Read is ReadPackage for an already assembled Package.
func (p Package) Read() (Training, error) {
	return ReadPackage(p.Code, p.Data)
}
