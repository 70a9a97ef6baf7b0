package workout

import (
	"fmt"
	"strings"
)

// InfoMessage is the computed summary of one workout.
type InfoMessage struct {
	TrainingType string  `json:"training_type"`
	Duration     float64 `json:"duration_h"`
	Distance     float64 `json:"distance_km"`
	Speed        float64 `json:"mean_speed_kmh"`
	Calories     float64 `json:"calories_kcal"`
}

// Message renders the summary as a single line with three decimals per value.
func (m InfoMessage) Message() string {
	return fmt.Sprintf(
		"Training type: %s; Duration: %.3f h; Distance: %.3f km; Mean speed: %.3f km/h; Calories burned: %.3f.",
		m.TrainingType,
		m.Duration,
		m.Distance,
		m.Speed,
		m.Calories,
	)
}

func (m InfoMessage) String() string {
	return m.Message()
}

// BuildReport joins the messages of several workouts, one line each.
func BuildReport(msgs []InfoMessage) string {
	if len(msgs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(m.Message())
		b.WriteByte('\n')
	}
	return b.String()
}
