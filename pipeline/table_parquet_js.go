//go:build js

package pipeline

import "errors"

// parquet-go pulls in apache/thrift, which does not build for js/wasm.
const defaultTableFormat = formatCSV

// ErrParquetUnsupported is returned when a parquet table is requested in a
// js/wasm build.
var ErrParquetUnsupported = errors.New("parquet tables are not supported on js/wasm (use csv)")

func marshalSummaryParquet([]Summary) ([]byte, error) {
	return nil, ErrParquetUnsupported
}
