//go:build !js

package pipeline

import (
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

const defaultTableFormat = formatParquet

type summaryParquetRow struct {
	Index        int64   `parquet:"name=index, type=INT64"`
	Code         string  `parquet:"name=code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	TrainingType string  `parquet:"name=training_type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	DurationH    float64 `parquet:"name=duration_h, type=DOUBLE"`
	DistanceKM   float64 `parquet:"name=distance_km, type=DOUBLE"`
	MeanSpeedKMH float64 `parquet:"name=mean_speed_kmh, type=DOUBLE"`
	CaloriesKcal float64 `parquet:"name=calories_kcal, type=DOUBLE"`
}

func marshalSummaryParquet(summaries []Summary) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(summaryParquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, s := range summaries {
		row := summaryParquetRow{
			Index:        int64(s.Index),
			Code:         s.Code,
			TrainingType: s.TrainingType,
			DurationH:    s.DurationH,
			DistanceKM:   s.DistanceKM,
			MeanSpeedKMH: s.MeanSpeedKMH,
			CaloriesKcal: s.CaloriesKcal,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
