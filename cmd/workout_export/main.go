package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	workout "fitness-tracker"
	"fitness-tracker/config"
	"fitness-tracker/pipeline"
)

func main() {
	cfg := config.Load()
	var (
		input     = flag.String("input", "", "Batch of sensor packages (.json or .csv)")
		outDir    = flag.String("out", cfg.OutDir, "Output directory")
		format    = flag.String("format", cfg.Format, "Summary table format: parquet|csv")
		weightKG  = flag.Float64("weight", cfg.WeightKG, "Athlete weight in kg, required for FIT files")
		heightCM  = flag.Int("height", cfg.HeightCM, "Athlete height in cm, required for walking FIT files")
		keepGoing = flag.Bool("keep-going", cfg.KeepGoing, "Record failing packages in the manifest instead of aborting")
		overwrite = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
		verbose   = flag.Bool("v", false, "Log progress to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --out outdir [--input packages.json] [--format parquet|csv] [activity.fit ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	src := workout.Sources{
		InputPath: *input,
		FITPaths:  flag.Args(),
		Athlete:   workout.Athlete{WeightKG: *weightKG, HeightCM: *heightCM},
	}
	packages, raw, err := src.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "workout_export failed: %v\n", err)
		os.Exit(1)
	}

	opts := pipeline.Options{
		Packages:   packages,
		SourceName: sourceName(*input),
		SourceData: raw,
		OutDir:     *outDir,
		Format:     *format,
		Overwrite:  *overwrite,
		KeepGoing:  *keepGoing,
	}
	if *verbose {
		opts.Logger = log.New(os.Stderr, "workout_export: ", log.LstdFlags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "workout_export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("workout_export complete\n")
	fmt.Printf("Output dir:        %s\n", result.OutputDir)
	fmt.Printf("manifest.json:     %s\n", result.ManifestPath)
	fmt.Printf("summaries.jsonl:   %s\n", result.SummariesPath)
	fmt.Printf("summary table:     %s\n", result.TablePath)
	fmt.Printf("report:            %s\n", result.ReportPath)
	fmt.Printf("metrics:           %s\n", result.MetricsPath)
	fmt.Printf("trainings:         %d\n", len(result.Summaries))
	for _, f := range result.Failures {
		fmt.Printf("skipped:           package %d (%s): %s\n", f.Index, f.Code, f.Error)
	}
}

func sourceName(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	return filepath.Base(path)
}
