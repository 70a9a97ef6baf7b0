//go:build !js

package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	workout "fitness-tracker"
	"github.com/stretchr/testify/require"
)

func TestRunWritesParquetTable(t *testing.T) {
	outDir := t.TempDir()

	res, err := Run(context.Background(), Options{
		Packages:  workout.DefaultPackages(),
		OutDir:    outDir,
		Overwrite: true,
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outDir, "summaries.parquet"), res.TablePath)

	data, err := os.ReadFile(res.TablePath)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("PAR1")))
	require.True(t, bytes.HasSuffix(data, []byte("PAR1")))
}

func TestBuildDefaultsToParquet(t *testing.T) {
	bundle, err := Build(context.Background(), Options{Packages: workout.DefaultPackages()})
	require.NoError(t, err)
	require.Equal(t, "parquet", bundle.Manifest.TableFormat)
	require.Contains(t, bundle.Files, "summaries.parquet")
}
