package source

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
	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/util"
)

// LoadParquet reads every row group of the Parquet file at path.
func LoadParquet(ctx context.Context, path string) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	return FromArrow(table)
}

// FromArrow copies an arrow table into a frame.Table.
func FromArrow(table arrow.Table) (*frame.Table, error) {
	cols := make([]*frame.Column, table.NumCols())
	for i := range cols {
		col := table.Column(i)
		kind, err := arrowKind(col.DataType())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name(), err)
		}

		vals := make([]frame.Value, 0, col.Len())
		for _, chunk := range col.Data().Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				if chunk.IsNull(j) {
					vals = append(vals, frame.Null(kind))
					continue
				}
				vals = append(vals, arrowValue(chunk, j))
			}
		}

		c, err := frame.NewColumn(col.Name(), kind, vals)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name(), err)
		}
		cols[i] = c
	}
	return frame.New(cols...)
}

func arrowKind(dt arrow.DataType) (frame.Kind, error) {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return frame.KindString, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return frame.KindInt, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return frame.KindFloat, nil
	case arrow.BOOL:
		return frame.KindBool, nil
	case arrow.DATE32, arrow.DATE64, arrow.TIMESTAMP:
		return frame.KindTime, nil
	}
	return 0, fmt.Errorf("%w: %s", util.ErrUnsupportedColumn, dt)
}

// arrowValue reads row i of a non-null cell whose type arrowKind accepted.
func arrowValue(arr arrow.Array, i int) frame.Value {
	switch a := arr.(type) {
	case *array.String:
		return frame.String(a.Value(i))
	case *array.LargeString:
		return frame.String(a.Value(i))
	case *array.Int8:
		return frame.Int(int64(a.Value(i)))
	case *array.Int16:
		return frame.Int(int64(a.Value(i)))
	case *array.Int32:
		return frame.Int(int64(a.Value(i)))
	case *array.Int64:
		return frame.Int(a.Value(i))
	case *array.Uint8:
		return frame.Int(int64(a.Value(i)))
	case *array.Uint16:
		return frame.Int(int64(a.Value(i)))
	case *array.Uint32:
		return frame.Int(int64(a.Value(i)))
	case *array.Uint64:
		return frame.Int(int64(a.Value(i)))
	case *array.Float32:
		return frame.Float(float64(a.Value(i)))
	case *array.Float64:
		return frame.Float(a.Value(i))
	case *array.Boolean:
		return frame.Bool(a.Value(i))
	case *array.Date32:
		return frame.Time(a.Value(i).ToTime())
	case *array.Date64:
		return frame.Time(a.Value(i).ToTime())
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return frame.Time(a.Value(i).ToTime(unit).UTC())
	}
	return frame.String(arr.ValueStr(i))
}
