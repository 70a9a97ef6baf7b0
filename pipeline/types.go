package pipeline

import (
	"log"
	"time"

	workout "fitness-tracker"
)

// FormatVersion identifies the on-disk schema of a summary bundle.
const FormatVersion = "workout_summary_v1"

// Artifact names written into every bundle.
const (
	SummariesJSONLName = "summaries.jsonl"
	ReportName         = "report.txt"
	ManifestName       = "manifest.json"
	MetricsName        = "metrics.prom"
	summariesBaseName  = "summaries"
)

// Options configures a summary run.
type Options struct {
	Packages []workout.Package

	// SourceName and SourceData describe the batch input, if any. The data is
	// only hashed into the manifest.
	SourceName string
	SourceData []byte

	OutDir    string
	Format    string // parquet|csv
	Overwrite bool

	// KeepGoing records failing packages and continues with the rest instead
	// of aborting the batch.
	KeepGoing bool

	Logger *log.Logger
}

// Bundle is a fully rendered set of artifacts keyed by file name.
type Bundle struct {
	Manifest  Manifest
	Summaries []Summary
	Files     map[string][]byte
}

// Result returns generated output paths.
type Result struct {
	OutputDir     string    `json:"output_dir"`
	ManifestPath  string    `json:"manifest_path"`
	SummariesPath string    `json:"summaries_path"`
	TablePath     string    `json:"table_path"`
	ReportPath    string    `json:"report_path"`
	MetricsPath   string    `json:"metrics_path"`
	Summaries     []Summary `json:"-"`
	Failures      []Failure `json:"-"`
}

// Summary is one computed workout row.
type Summary struct {
	Index        int     `json:"index"`
	Code         string  `json:"code"`
	TrainingType string  `json:"training_type"`
	DurationH    float64 `json:"duration_h"`
	DistanceKM   float64 `json:"distance_km"`
	MeanSpeedKMH float64 `json:"mean_speed_kmh"`
	CaloriesKcal float64 `json:"calories_kcal"`
	Message      string  `json:"message"`
}

// Failure is one package that could not be turned into a summary.
type Failure struct {
	Index  int    `json:"index"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// Manifest captures run metadata and pointers to the generated files.
type Manifest struct {
	FormatVersion string    `json:"format_version"`
	RunID         string    `json:"run_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	SourceName    string    `json:"source_name,omitempty"`
	SourceSHA256  string    `json:"source_sha256,omitempty"`
	SourceSize    int64     `json:"source_size_bytes,omitempty"`
	TableFormat   string    `json:"table_format"`
	PackageCount  int       `json:"package_count"`
	SummaryCount  int       `json:"summary_count"`
	FailureCount  int       `json:"failure_count"`
	Failures      []Failure `json:"failures,omitempty"`
	Files         []string  `json:"files"`
}
