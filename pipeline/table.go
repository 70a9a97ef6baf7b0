package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

const (
	formatParquet = "parquet"
	formatCSV     = "csv"
)

var summaryColumns = []string{
	"index", "code", "training_type", "duration_h", "distance_km", "mean_speed_kmh", "calories_kcal",
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = defaultTableFormat
	}
	if format != formatParquet && format != formatCSV {
		return "", fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}
	return format, nil
}

func marshalTable(format string, summaries []Summary) ([]byte, error) {
	if format == formatCSV {
		return marshalSummaryCSV(summaries)
	}
	return marshalSummaryParquet(summaries)
}

func marshalSummaryCSV(summaries []Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(summaryColumns); err != nil {
		return nil, err
	}
	for _, s := range summaries {
		row := []string{
			strconv.Itoa(s.Index),
			s.Code,
			s.TrainingType,
			formatFloat(s.DurationH),
			formatFloat(s.DistanceKM),
			formatFloat(s.MeanSpeedKMH),
			formatFloat(s.CaloriesKcal),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
