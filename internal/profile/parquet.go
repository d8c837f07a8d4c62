package profile

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// loadParquet reads a Parquet file into records. String and numeric columns
// become scalars; list columns become []string.
func loadParquet(ctx context.Context, path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(parquet.NewReaderProperties(memory.DefaultAllocator)))
	if err != nil {
		return nil, fmt.Errorf("creating parquet reader: %w", err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("creating arrow reader: %w", err)
	}

	table, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading parquet data: %w", err)
	}
	defer table.Release()

	return recordsFromTable(table), nil
}

// recordsFromTable converts an Arrow table to records, one per row.
func recordsFromTable(table arrow.Table) []Record {
	rows := int(table.NumRows())
	records := make([]Record, rows)
	for i := range records {
		records[i] = make(Record, table.NumCols())
	}

	schema := table.Schema()
	for c := 0; c < int(table.NumCols()); c++ {
		name := schema.Field(c).Name
		row := 0
		for _, chunk := range table.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				if !chunk.IsNull(i) {
					records[row][name] = arrowValue(chunk, i)
				}
				row++
			}
		}
	}
	return records
}

func arrowValue(arr arrow.Array, i int) any {
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.Int32:
		return a.Value(i)
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.List:
		start, end := a.ValueOffsets(i)
		return listStrings(a.ListValues(), start, end)
	case *array.LargeList:
		start, end := a.ValueOffsets(i)
		return listStrings(a.ListValues(), start, end)
	default:
		return arr.ValueStr(i)
	}
}

func listStrings(values arrow.Array, start, end int64) []string {
	out := make([]string, 0, end-start)
	for j := start; j < end; j++ {
		if values.IsNull(int(j)) {
			continue
		}
		out = append(out, formatValue(arrowValue(values, int(j))))
	}
	return out
}
