package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	workout "fitness-tracker"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRunWritesCSVBundle(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	source := []byte(`[{"code":"RUN","data":[15000,1,75]}]`)

	res, err := Run(context.Background(), Options{
		Packages:   workout.DefaultPackages(),
		SourceName: "packages.json",
		SourceData: source,
		OutDir:     outDir,
		Format:     "CSV",
		Overwrite:  true,
	})
	require.NoError(t, err)
	require.Len(t, res.Summaries, 3)
	require.Empty(t, res.Failures)
	require.Equal(t, filepath.Join(outDir, "summaries.csv"), res.TablePath)

	report, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(report)), "\n")
	require.Equal(t, []string{
		"Training type: Swimming; Duration: 1.000 h; Distance: 0.994 km; Mean speed: 1.000 km/h; Calories burned: 336.000.",
		"Training type: Running; Duration: 1.000 h; Distance: 9.750 km; Mean speed: 9.750 km/h; Calories burned: 797.805.",
		"Training type: SportsWalking; Duration: 1.000 h; Distance: 5.850 km; Mean speed: 5.850 km/h; Calories burned: 349.252.",
	}, lines)

	f, err := os.Open(res.TablePath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, summaryColumns, rows[0])
	require.Equal(t, []string{"1", "RUN", "Running", "1.000", "9.750", "9.750", "797.805"}, rows[2])

	data, err := os.ReadFile(res.ManifestPath)
	require.NoError(t, err)
	var manifest Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	require.Equal(t, FormatVersion, manifest.FormatVersion)
	_, err = uuid.Parse(manifest.RunID)
	require.NoError(t, err)
	require.Equal(t, "packages.json", manifest.SourceName)
	require.Len(t, manifest.SourceSHA256, 64)
	require.Equal(t, int64(len(source)), manifest.SourceSize)
	require.Equal(t, 3, manifest.PackageCount)
	require.Equal(t, 3, manifest.SummaryCount)
	require.Zero(t, manifest.FailureCount)
	require.Equal(t, []string{"manifest.json", "metrics.prom", "report.txt", "summaries.csv", "summaries.jsonl"}, manifest.Files)
	for _, name := range manifest.Files {
		require.FileExists(t, filepath.Join(outDir, name))
	}

	jsonl, err := os.Open(res.SummariesPath)
	require.NoError(t, err)
	defer jsonl.Close()
	sc := bufio.NewScanner(jsonl)
	var got []Summary
	for sc.Scan() {
		var s Summary
		require.NoError(t, json.Unmarshal(sc.Bytes(), &s))
		got = append(got, s)
	}
	require.NoError(t, sc.Err())
	require.Equal(t, res.Summaries, got)

	metrics, err := os.ReadFile(res.MetricsPath)
	require.NoError(t, err)
	require.Contains(t, string(metrics), `fitness_tracker_batch_trainings_processed_total{training_type="Running"} 1`)
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	pkgs := []workout.Package{
		{Code: "RUN", Data: []float64{15000, 1, 75}},
		{Code: "XYZ", Data: []float64{1, 2, 3}},
		{Code: "WLK", Data: []float64{9000, 1, 75, 180}},
	}

	_, err := Run(context.Background(), Options{Packages: pkgs, OutDir: outDir, Format: "csv"})
	require.ErrorIs(t, err, workout.ErrUnknownWorkout)
	require.ErrorContains(t, err, "package 1 (XYZ)")
	require.NoDirExists(t, outDir)
}

func TestBuildKeepGoingRecordsFailures(t *testing.T) {
	var logs bytes.Buffer
	pkgs := []workout.Package{
		{Code: "XYZ", Data: []float64{1, 2, 3}},
		{Code: "RUN", Data: []float64{15000, 1, 75}},
		{Code: "WLK", Data: []float64{9000, 1}},
		{Code: "RUN", Data: []float64{15000, 0, 75}},
	}

	bundle, err := Build(context.Background(), Options{
		Packages:  pkgs,
		Format:    "csv",
		KeepGoing: true,
		Logger:    log.New(&logs, "", 0),
	})
	require.NoError(t, err)
	require.Len(t, bundle.Summaries, 1)
	require.Equal(t, 1, bundle.Summaries[0].Index)
	require.Equal(t, 3, bundle.Manifest.FailureCount)

	reasons := make([]string, 0, 3)
	for _, f := range bundle.Manifest.Failures {
		reasons = append(reasons, f.Reason)
	}
	require.Equal(t, []string{"unknown_workout", "arity", "invalid_input"}, reasons)
	require.Contains(t, logs.String(), "skipping package 0 (XYZ)")
	require.Contains(t, string(bundle.Files[MetricsName]), `fitness_tracker_batch_trainings_failed_total{reason="arity"} 1`)
}

func TestBuildHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, Options{Packages: workout.DefaultPackages()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildRejectsUnknownFormat(t *testing.T) {
	_, err := Build(context.Background(), Options{Packages: workout.DefaultPackages(), Format: "xlsx"})
	require.ErrorContains(t, err, "unsupported format")
}

func TestRunRequiresEmptyDirWithoutOverwrite(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "keep.txt"), []byte("x"), 0o644))

	_, err := Run(context.Background(), Options{Packages: workout.DefaultPackages(), OutDir: outDir, Format: "csv"})
	require.ErrorContains(t, err, "output directory is not empty")
}

func TestRunMetricsCounters(t *testing.T) {
	m := newRunMetrics()
	m.observe(Summary{TrainingType: "Running", CaloriesKcal: 100, DistanceKM: 5})
	m.observe(Summary{TrainingType: "Running", CaloriesKcal: 50, DistanceKM: 2.5})
	m.reject("arity")

	require.Equal(t, 2.0, testutil.ToFloat64(m.processed.WithLabelValues("Running")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.failed.WithLabelValues("arity")))
	require.Equal(t, 150.0, testutil.ToFloat64(m.calories))
	require.Equal(t, 7.5, testutil.ToFloat64(m.distance))
}
