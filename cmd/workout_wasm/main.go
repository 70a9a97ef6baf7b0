//go:build js && wasm

package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sort"
	"syscall/js"
	"time"

	workout "fitness-tracker"
	"fitness-tracker/pipeline"
)

func main() {
	js.Global().Set("trainingReport", js.FuncOf(trainingReport))
	js.Global().Set("exportTrainings", js.FuncOf(exportTrainings))
	select {}
}

// trainingReport(code string, values number[]) -> {ok, message} | {ok, error}
func trainingReport(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return failure("expected arguments: code(string), values(Array<number>)")
	}
	data, err := floats(args[1])
	if err != nil {
		return failure(err.Error())
	}
	training, err := workout.ReadPackage(args[0].String(), data)
	if err != nil {
		return failure(err.Error())
	}
	info := training.ShowTrainingInfo()
	return map[string]any{
		"ok":       true,
		"message":  info.Message(),
		"type":     info.TrainingType,
		"distance": info.Distance,
		"speed":    info.Speed,
		"calories": info.Calories,
	}
}

// exportTrainings(packagesJSON string, options object) -> {ok, zip, files}
func exportTrainings(_ js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return failure("expected arguments: packagesJSON(string), options(object)")
	}
	raw := []byte(args[0].String())
	packages, err := workout.LoadPackages(bytes.NewReader(raw), workout.FormatJSON)
	if err != nil {
		return failure(err.Error())
	}

	var optsArg js.Value
	if len(args) > 1 {
		optsArg = args[1]
	}
	bundle, err := pipeline.Build(context.Background(), pipeline.Options{
		Packages:   packages,
		SourceName: getString(optsArg, "source_name", "packages.json"),
		SourceData: raw,
		Format:     getString(optsArg, "format", "csv"),
		KeepGoing:  getBool(optsArg, "keep_going"),
	})
	if err != nil {
		return failure(err.Error())
	}

	zipBytes, err := zipArtifacts(bundle.Files)
	if err != nil {
		return failure(fmt.Sprintf("create zip: %v", err))
	}
	payload := js.Global().Get("Uint8Array").New(len(zipBytes))
	js.CopyBytesToJS(payload, zipBytes)

	return map[string]any{
		"ok":    true,
		"zip":   payload,
		"files": stringsToAny(bundle.Manifest.Files),
	}
}

func failure(msg string) map[string]any {
	return map[string]any{
		"ok":    false,
		"error": msg,
	}
}

func floats(v js.Value) ([]float64, error) {
	if v.IsUndefined() || v.IsNull() {
		return nil, fmt.Errorf("values are required")
	}
	n := v.Get("length").Int()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		item := v.Index(i)
		if item.Type() != js.TypeNumber {
			return nil, fmt.Errorf("value %d is not a number", i)
		}
		out[i] = item.Float()
	}
	return out, nil
}

func zipArtifacts(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fixedTime := time.Unix(0, 0).UTC()

	for _, name := range names {
		h := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		h.SetModTime(fixedTime)
		w, err := zw.CreateHeader(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getString(v js.Value, key, fallback string) string {
	if v.IsUndefined() || v.IsNull() {
		return fallback
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() || out.Type() != js.TypeString {
		return fallback
	}
	if s := out.String(); s != "" {
		return s
	}
	return fallback
}

func getBool(v js.Value, key string) bool {
	if v.IsUndefined() || v.IsNull() {
		return false
	}
	out := v.Get(key)
	return out.Type() == js.TypeBoolean && out.Bool()
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
