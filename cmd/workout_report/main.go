package main

import (
	"flag"
	"fmt"
	"os"

	workout "fitness-tracker"
	"fitness-tracker/config"
)

func main() {
	cfg := config.Load()
	var (
		input     = flag.String("input", "", "Batch of sensor packages (.json or .csv); the built-in samples are used when no input is given")
		weightKG  = flag.Float64("weight", cfg.WeightKG, "Athlete weight in kg, required for FIT files")
		heightCM  = flag.Int("height", cfg.HeightCM, "Athlete height in cm, required for walking FIT files")
		keepGoing = flag.Bool("keep-going", cfg.KeepGoing, "Report failing packages on stderr and continue with the rest")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [activity.fit ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	src := workout.Sources{
		InputPath: *input,
		FITPaths:  flag.Args(),
		Athlete:   workout.Athlete{WeightKG: *weightKG, HeightCM: *heightCM},
	}
	packages, _, err := src.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load packages failed: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for i, pkg := range packages {
		training, err := pkg.Read()
		if err != nil {
			fmt.Fprintf(os.Stderr, "package %d (%s): %v\n", i, pkg.Code, err)
			if !*keepGoing {
				os.Exit(1)
			}
			failed = true
			continue
		}
		fmt.Println(training.ShowTrainingInfo().Message())
	}
	if failed {
		os.Exit(1)
	}
}
