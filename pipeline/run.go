package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	workout "fitness-tracker"
	"github.com/google/uuid"
)

// Run builds the summary bundle for opts.Packages and writes every artifact
// into opts.OutDir.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	bundle, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := ensureOutputDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}
	for _, name := range bundle.Manifest.Files {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, bundle.Files[name], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	return &Result{
		OutputDir:     opts.OutDir,
		ManifestPath:  filepath.Join(opts.OutDir, ManifestName),
		SummariesPath: filepath.Join(opts.OutDir, SummariesJSONLName),
		TablePath:     filepath.Join(opts.OutDir, tableName(bundle.Manifest.TableFormat)),
		ReportPath:    filepath.Join(opts.OutDir, ReportName),
		MetricsPath:   filepath.Join(opts.OutDir, MetricsName),
		Summaries:     bundle.Summaries,
		Failures:      bundle.Manifest.Failures,
	}, nil
}

// Build computes every package summary and renders the artifacts in memory.
// Without opts.KeepGoing the first failing package aborts the batch.
func Build(ctx context.Context, opts Options) (*Bundle, error) {
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	metrics := newRunMetrics()
	summaries := make([]Summary, 0, len(opts.Packages))
	infos := make([]workout.InfoMessage, 0, len(opts.Packages))
	failures := make([]Failure, 0)

	for i, pkg := range opts.Packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := readInfo(pkg)
		if err != nil {
			reason := failureReason(err)
			metrics.reject(reason)
			if !opts.KeepGoing {
				return nil, fmt.Errorf("package %d (%s): %w", i, pkg.Code, err)
			}
			logger.Printf("skipping package %d (%s): %v", i, pkg.Code, err)
			failures = append(failures, Failure{
				Index:  i,
				Code:   pkg.Code,
				Reason: reason,
				Error:  err.Error(),
			})
			continue
		}
		summary := newSummary(i, pkg.Code, info)
		metrics.observe(summary)
		summaries = append(summaries, summary)
		infos = append(infos, info)
	}

	manifest := Manifest{
		FormatVersion: FormatVersion,
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		SourceName:    opts.SourceName,
		TableFormat:   format,
		PackageCount:  len(opts.Packages),
		SummaryCount:  len(summaries),
		FailureCount:  len(failures),
		Failures:      failures,
	}
	if len(opts.SourceData) > 0 {
		sum := sha256.Sum256(opts.SourceData)
		manifest.SourceSHA256 = hex.EncodeToString(sum[:])
		manifest.SourceSize = int64(len(opts.SourceData))
	}

	files := make(map[string][]byte, 5)

	jsonl, err := marshalJSONL(summaries)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", SummariesJSONLName, err)
	}
	files[SummariesJSONLName] = jsonl

	table, err := marshalTable(format, summaries)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", tableName(format), err)
	}
	files[tableName(format)] = table

	files[ReportName] = []byte(workout.BuildReport(infos))

	prom, err := metrics.textfile()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", MetricsName, err)
	}
	files[MetricsName] = prom

	names := make([]string, 0, len(files)+1)
	for name := range files {
		names = append(names, name)
	}
	names = append(names, ManifestName)
	sort.Strings(names)
	manifest.Files = names

	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", ManifestName, err)
	}
	files[ManifestName] = append(manifestData, '\n')

	logger.Printf("summarised %d of %d packages (run %s)", len(summaries), len(opts.Packages), manifest.RunID)

	return &Bundle{
		Manifest:  manifest,
		Summaries: summaries,
		Files:     files,
	}, nil
}

func readInfo(pkg workout.Package) (workout.InfoMessage, error) {
	t, err := pkg.Read()
	if err != nil {
		return workout.InfoMessage{}, err
	}
	return t.ShowTrainingInfo(), nil
}

func newSummary(index int, code string, info workout.InfoMessage) Summary {
	return Summary{
		Index:        index,
		Code:         code,
		TrainingType: info.TrainingType,
		DurationH:    info.Duration,
		DistanceKM:   info.Distance,
		MeanSpeedKMH: info.Speed,
		CaloriesKcal: info.Calories,
		Message:      info.Message(),
	}
}

func tableName(format string) string {
	return summariesBaseName + "." + format
}

func marshalJSONL(summaries []Summary) ([]byte, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	for _, s := range summaries {
		if err := enc.Encode(s); err != nil {
			return nil, err
		}
	}
	return []byte(b.String()), nil
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}
