// Package source loads a frame.Table from a CSV file, a Parquet file, a
// SQLite database or a PostgreSQL query.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/util"
)

// DefaultTimeout bounds database sources when Spec.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Spec names exactly one table source.
type Spec struct {
	CSV     string
	Parquet string
	SQLite  string
	DSN     string
	// Query selects the rows of a database source.
	Query   string
	Timeout time.Duration
}

// Kind returns "csv", "parquet", "sqlite" or "postgres".
func (s Spec) Kind() (string, error) {
	var kinds []string
	if s.CSV != "" {
		kinds = append(kinds, "csv")
	}
	if s.Parquet != "" {
		kinds = append(kinds, "parquet")
	}
	if s.SQLite != "" {
		kinds = append(kinds, "sqlite")
	}
	if s.DSN != "" {
		kinds = append(kinds, "postgres")
	}

	switch len(kinds) {
	case 0:
		return "", util.ErrNoSource
	case 1:
	default:
		return "", fmt.Errorf("%w: %v", util.ErrAmbiguousSource, kinds)
	}

	if (kinds[0] == "sqlite" || kinds[0] == "postgres") && s.Query == "" {
		return "", util.ErrQueryRequired
	}
	return kinds[0], nil
}

// Name is a short label for the source, used as a display title.
func (s Spec) Name() string {
	switch {
	case s.CSV != "":
		return filepath.Base(s.CSV)
	case s.Parquet != "":
		return filepath.Base(s.Parquet)
	case s.SQLite != "":
		return filepath.Base(s.SQLite)
	case s.DSN != "":
		return "postgres"
	}
	return ""
}

// Open loads the table named by s.
func Open(ctx context.Context, s Spec) (*frame.Table, error) {
	kind, err := s.Kind()
	if err != nil {
		return nil, err
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	switch kind {
	case "csv":
		return LoadCSV(s.CSV)
	case "parquet":
		return LoadParquet(ctx, s.Parquet)
	case "sqlite":
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return QuerySQLite(ctx, s.SQLite, s.Query)
	default:
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return QueryPostgres(ctx, s.DSN, s.Query)
	}
}
