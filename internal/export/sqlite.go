package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/robert-malhotra/go-cbf/cbf"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE categories (
	table_name TEXT PRIMARY KEY,
	block      TEXT NOT NULL,
	saveframe  TEXT NOT NULL,
	category   TEXT NOT NULL,
	row_count  INTEGER NOT NULL
);
CREATE TABLE arrays (
	id          INTEGER PRIMARY KEY,
	table_name  TEXT NOT NULL,
	column_name TEXT NOT NULL,
	row_index   INTEGER NOT NULL,
	dtype       TEXT NOT NULL,
	shape       TEXT NOT NULL,
	blake3      TEXT NOT NULL,
	data        BLOB
);`

// TableName returns the table holding a category: block__category, or
// block__saveframe__category inside a saveframe.
func TableName(p cbf.Path) string {
	parts := []string{p.Block}
	if p.Saveframe != "" {
		parts = append(parts, p.Saveframe)
	}
	return strings.Join(append(parts, p.Category), "__")
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// WriteSQLite writes blocks to a new database at path, replacing any
// existing file. Each category becomes a table with a row_index column and
// one TEXT column per category column. Binary cells hold "array:<id>"
// referencing the arrays table; array data is stored only when withData is
// set.
func WriteSQLite(ctx context.Context, path string, blocks []cbf.Block, withData bool) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	w := &sqliteWriter{ctx: ctx, tx: tx, withData: withData}
	for _, b := range blocks {
		for _, c := range b.Categories {
			if err := w.category(cbf.Path{Block: b.Name, Category: c.Name}, c); err != nil {
				return err
			}
		}
		for _, f := range b.Saveframes {
			for _, c := range f.Categories {
				if err := w.category(cbf.Path{Block: b.Name, Saveframe: f.Name, Category: c.Name}, c); err != nil {
					return err
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type sqliteWriter struct {
	ctx      context.Context
	tx       *sql.Tx
	withData bool
	arrayID  int64
}

func (w *sqliteWriter) category(p cbf.Path, c cbf.Category) error {
	table := TableName(p)
	rows := 0
	if len(c.Columns) > 0 {
		rows = len(c.Values[c.Columns[0]])
	}

	if _, err := w.tx.ExecContext(w.ctx,
		`INSERT INTO categories (table_name, block, saveframe, category, row_count) VALUES (?, ?, ?, ?, ?)`,
		table, p.Block, p.Saveframe, p.Category, rows); err != nil {
		return fmt.Errorf("registering %s: %w", table, err)
	}

	defs := []string{"row_index INTEGER PRIMARY KEY"}
	cols := []string{"row_index"}
	for _, col := range c.Columns {
		defs = append(defs, quote(col)+" TEXT")
		cols = append(cols, quote(col))
	}
	if _, err := w.tx.ExecContext(w.ctx,
		fmt.Sprintf("CREATE TABLE %s (%s)", quote(table), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt, err := w.tx.PrepareContext(w.ctx,
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(table), strings.Join(cols, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("preparing insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for row := 0; row < rows; row++ {
		args := []any{row}
		for _, col := range c.Columns {
			v, err := w.cell(table, col, row, c.Values[col][row])
			if err != nil {
				return err
			}
			args = append(args, v)
		}
		if _, err := stmt.ExecContext(w.ctx, args...); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}

func (w *sqliteWriter) cell(table, col string, row int, v any) (any, error) {
	a, ok := v.(cbf.Array)
	if !ok {
		return v, nil
	}

	w.arrayID++
	shape, err := json.Marshal(a.Shape())
	if err != nil {
		return nil, err
	}
	var data []byte
	if w.withData {
		data = a.Bytes()
	}
	if _, err := w.tx.ExecContext(w.ctx,
		`INSERT INTO arrays (id, table_name, column_name, row_index, dtype, shape, blake3, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.arrayID, table, col, row, a.DType(), string(shape), Digest(a), data); err != nil {
		return nil, fmt.Errorf("inserting array: %w", err)
	}
	return fmt.Sprintf("array:%d", w.arrayID), nil
}
