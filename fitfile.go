package workout

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tormoder/fit"
)

// stepsPerStride converts FIT cycle counts for foot sports into steps.
const stepsPerStride = 2

// ErrUnsupportedSport is returned for FIT sessions no calculator covers.
var ErrUnsupportedSport = errors.New("unsupported sport")

// Athlete supplies the body measurements FIT activity sessions do not carry.
type Athlete struct {
	WeightKG float64
	HeightCM int
}

// ReadFITFile decodes an activity FIT file and converts its first session
// into a sensor package.
func ReadFITFile(path string, athlete Athlete) (Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return Package{}, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	return DecodeFIT(f, athlete)
}

// DecodeFIT is ReadFITFile for an already opened stream.
func DecodeFIT(r io.Reader, athlete Athlete) (Package, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return Package{}, fmt.Errorf("decode FIT file: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return Package{}, fmt.Errorf("activity FIT expected: %w", err)
	}
	if len(activity.Sessions) == 0 || activity.Sessions[0] == nil {
		return Package{}, fmt.Errorf("activity file has no session message")
	}
	return PackageFromSession(activity.Sessions[0], activeLengths(activity.Lengths), athlete)
}

// PackageFromSession maps one FIT session onto the positional values the
// dispatcher expects. lengths is the number of active pool lengths found
// outside the session, used when the session does not report it.
func PackageFromSession(session *fit.SessionMsg, lengths int, athlete Athlete) (Package, error) {
	hours := safePositive(session.GetTotalTimerTimeScaled()) / secondsPerHour
	if hours == 0 {
		hours = safePositive(session.GetTotalElapsedTimeScaled()) / secondsPerHour
	}
	if hours == 0 {
		return Package{}, fmt.Errorf("%w: session has no timer time", ErrInvalidInput)
	}
	cycles := float64(validUint32(session.TotalCycles))

	switch session.Sport {
	case fit.SportRunning:
		return Package{
			Code: CodeRunning,
			Data: []float64{cycles * stepsPerStride, hours, athlete.WeightKG},
		}, nil
	case fit.SportWalking, fit.SportHiking:
		if athlete.HeightCM <= 0 {
			return Package{}, fmt.Errorf("%w: walking sessions need the athlete height", ErrInvalidInput)
		}
		return Package{
			Code: CodeWalking,
			Data: []float64{cycles * stepsPerStride, hours, athlete.WeightKG, float64(athlete.HeightCM)},
		}, nil
	case fit.SportSwimming:
		poolLength := math.Round(safePositive(session.GetPoolLengthScaled()))
		if poolLength == 0 {
			return Package{}, fmt.Errorf("%w: swimming session has no pool length", ErrInvalidInput)
		}
		count := float64(validUint16(session.NumActiveLengths))
		if count == 0 {
			count = float64(lengths)
		}
		return Package{
			Code: CodeSwimming,
			Data: []float64{cycles, hours, athlete.WeightKG, poolLength, count},
		}, nil
	default:
		return Package{}, fmt.Errorf("%w: %v", ErrUnsupportedSport, session.Sport)
	}
}

func activeLengths(lengths []*fit.LengthMsg) int {
	n := 0
	for _, l := range lengths {
		if l != nil && l.LengthType == fit.LengthTypeActive {
			n++
		}
	}
	return n
}

const secondsPerHour = 3600.0

func safePositive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

func validUint16(v uint16) uint16 {
	if v == math.MaxUint16 {
		return 0
	}
	return v
}

func validUint32(v uint32) uint32 {
	if v == math.MaxUint32 {
		return 0
	}
	return v
}
