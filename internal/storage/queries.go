package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CalcRecord is one memoized scorer output.
type CalcRecord struct {
	SourceName string
	SourceHash string
	Size       int
	CreatedAt  time.Time
}

// GetCalc returns the stored scorer output for (name, hash).
// ok is false when nothing is stored.
func (db *DB) GetCalc(name, hash string) (output string, ok bool, err error) {
	err = db.conn.QueryRow(
		"SELECT output FROM calcs WHERE source_name = ? AND source_hash = ?", name, hash,
	).Scan(&output)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return output, true, nil
}

// PutCalc stores scorer output. Uses INSERT OR REPLACE for idempotency.
func (db *DB) PutCalc(name, hash, output string) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO calcs(source_name, source_hash, output, created_at)
		VALUES (?, ?, ?, ?)`,
		name, hash, output, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert calc for %s: %w", name, err)
	}
	return nil
}

// ListCalcs returns every stored output ordered by source name, newest first
// within a name.
func (db *DB) ListCalcs() ([]CalcRecord, error) {
	rows, err := db.conn.Query(`
		SELECT source_name, source_hash, length(output), created_at
		FROM calcs ORDER BY source_name ASC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CalcRecord
	for rows.Next() {
		var r CalcRecord
		var created int64
		if err := rows.Scan(&r.SourceName, &r.SourceHash, &r.Size, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(created, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// PruneCalcs deletes outputs stored under name whose hash differs from keep.
// Returns the number of rows removed.
func (db *DB) PruneCalcs(name, keep string) (int64, error) {
	res, err := db.conn.Exec(
		"DELETE FROM calcs WHERE source_name = ? AND source_hash != ?", name, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// QueryRaw runs an arbitrary query and returns column names and rows as strings.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
