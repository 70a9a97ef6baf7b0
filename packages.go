package workout

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Supported batch input formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// DefaultPackages returns the sample sensor readings shipped with the tool.
func DefaultPackages() []Package {
	return []Package{
		{Code: CodeSwimming, Data: []float64{720, 1, 80, 25, 40}},
		{Code: CodeRunning, Data: []float64{15000, 1, 75}},
		{Code: CodeWalking, Data: []float64{9000, 1, 75, 180}},
	}
}

// DetectFormat picks the batch format from the file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("cannot detect package format of %q (expected .json or .csv)", path)
	}
}

// LoadPackagesFile reads a batch of packages from path. The raw file content
// is returned alongside so callers can fingerprint the input.
func LoadPackagesFile(path string) ([]Package, []byte, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read packages file: %w", err)
	}
	pkgs, err := LoadPackages(bytes.NewReader(data), format)
	if err != nil {
		return nil, nil, err
	}
	return pkgs, data, nil
}

// Sources selects where a batch of packages comes from. With neither an
// input file nor FIT files the default sample packages are used.
type Sources struct {
	InputPath string
	FITPaths  []string
	Athlete   Athlete
}

// Load gathers the packages of every configured source, batch file first.
func (s Sources) Load() ([]Package, []byte, error) {
	var (
		pkgs []Package
		raw  []byte
	)
	if strings.TrimSpace(s.InputPath) != "" {
		loaded, data, err := LoadPackagesFile(s.InputPath)
		if err != nil {
			return nil, nil, err
		}
		pkgs = append(pkgs, loaded...)
		raw = data
	}
	for _, path := range s.FITPaths {
		pkg, err := ReadFITFile(path, s.Athlete)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		pkgs = append(pkgs, pkg)
	}
	if strings.TrimSpace(s.InputPath) == "" && len(s.FITPaths) == 0 {
		pkgs = DefaultPackages()
	}
	return pkgs, raw, nil
}

// LoadPackages decodes a batch of packages. JSON input is an array of
// {"code": ..., "data": [...]} objects; CSV input has one package per line
// with the code in the first column.
func LoadPackages(r io.Reader, format string) ([]Package, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return loadJSONPackages(r)
	case FormatCSV:
		return loadCSVPackages(r)
	default:
		return nil, fmt.Errorf("unsupported package format %q (expected json|csv)", format)
	}
}

func loadJSONPackages(r io.Reader) ([]Package, error) {
	var pkgs []Package
	dec := json.NewDecoder(r)
	if err := dec.Decode(&pkgs); err != nil {
		return nil, fmt.Errorf("decode json packages: %w", err)
	}
	for i := range pkgs {
		pkgs[i].Code = strings.TrimSpace(pkgs[i].Code)
		if pkgs[i].Code == "" {
			return nil, fmt.Errorf("package %d: missing workout code", i)
		}
	}
	return pkgs, nil
}

func loadCSVPackages(r io.Reader) ([]Package, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	pkgs := make([]Package, 0, 16)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv packages: %w", err)
		}
		line, _ := cr.FieldPos(0)
		code := strings.TrimSpace(row[0])
		if code == "" {
			return nil, fmt.Errorf("line %d: missing workout code", line)
		}
		data := make([]float64, 0, len(row)-1)
		for _, cell := range row[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse value %q: %w", line, cell, err)
			}
			data = append(data, v)
		}
		pkgs = append(pkgs, Package{Code: code, Data: data})
	}
	return pkgs, nil
}
