package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sitebook-dev/sitebook/internal/store"
)

// Export writes every table to <dir>/<table>.csv and returns the
// written paths. Column order mirrors the database schema so the
// files line up with what the backup snapshots contain.
func Export(ctx context.Context, st *store.Store, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	tables := []struct {
		name   string
		header string
		rows   func(context.Context, *store.Store) ([][]string, error)
	}{
		{"accounts", accountsHeader, accountRows},
		{"projects", projectsHeader, projectRows},
		{"journal", journalHeader, journalRows},
		{"cash_book", cashBookHeader, cashBookRows},
		{"invoices", invoicesHeader, invoiceRows},
		{"debts_fixed", debtsFixedHeader, debtRows},
	}

	var paths []string
	for _, table := range tables {
		rows, err := table.rows(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", table.name, err)
		}

		path := filepath.Join(dir, table.name+".csv")
		if err := writeTable(path, table.header, rows); err != nil {
			return nil, fmt.Errorf("writing %s: %w", table.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeTable(path, header string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
