package workout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShowTrainingInfoMessages(t *testing.T) {
	tests := []struct {
		pkg  Package
		want string
	}{
		{
			pkg:  Package{Code: CodeSwimming, Data: []float64{720, 1, 80, 25, 40}},
			want: "Training type: Swimming; Duration: 1.000 h; Distance: 0.994 km; Mean speed: 1.000 km/h; Calories burned: 336.000.",
		},
		{
			pkg:  Package{Code: CodeRunning, Data: []float64{15000, 1, 75}},
			want: "Training type: Running; Duration: 1.000 h; Distance: 9.750 km; Mean speed: 9.750 km/h; Calories burned: 797.805.",
		},
		{
			pkg:  Package{Code: CodeWalking, Data: []float64{9000, 1, 75, 180}},
			want: "Training type: SportsWalking; Duration: 1.000 h; Distance: 5.850 km; Mean speed: 5.850 km/h; Calories burned: 349.252.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.pkg.Code, func(t *testing.T) {
			training, err := tt.pkg.Read()
			require.NoError(t, err)
			require.Equal(t, tt.want, training.ShowTrainingInfo().Message())
		})
	}
}

func TestMessageAlwaysThreeDecimals(t *testing.T) {
	msg := InfoMessage{
		TrainingType: "Running",
		Duration:     0.5,
		Distance:     12345.6789,
		Speed:        0,
		Calories:     1234567.0004,
	}
	require.Equal(t,
		"Training type: Running; Duration: 0.500 h; Distance: 12345.679 km; Mean speed: 0.000 km/h; Calories burned: 1234567.000.",
		msg.Message(),
	)
	require.Equal(t, msg.Message(), msg.String())
}

func TestBuildReport(t *testing.T) {
	require.Empty(t, BuildReport(nil))

	a := InfoMessage{TrainingType: "Running", Duration: 1}
	b := InfoMessage{TrainingType: "Swimming", Duration: 2}
	require.Equal(t, a.Message()+"\n"+b.Message()+"\n", BuildReport([]InfoMessage{a, b}))
}
