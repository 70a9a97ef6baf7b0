//go:build js

package pipeline

import (
	"context"
	"testing"

	workout "fitness-tracker"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultsToCSVOnJS(t *testing.T) {
	bundle, err := Build(context.Background(), Options{Packages: workout.DefaultPackages()})
	require.NoError(t, err)
	require.Equal(t, "csv", bundle.Manifest.TableFormat)
	require.Contains(t, bundle.Files, "summaries.csv")
}

func TestBuildRejectsParquetOnJS(t *testing.T) {
	_, err := Build(context.Background(), Options{Packages: workout.DefaultPackages(), Format: "parquet"})
	require.ErrorIs(t, err, ErrParquetUnsupported)
}
