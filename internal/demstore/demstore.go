// Package demstore persists digital elevation models in sqlite. Grid metadata
// lives in queryable columns; the elevation samples are stored as a gzipped
// little-endian float64 blob, which compresses real-world terrain by an order
// of magnitude.
package demstore

import (
	"bytes"
	"compress/gzip"
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tailscale/tailsql/server/tailsql"
	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/monitoring"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
)

// ErrNotFound is returned when no model exists under the requested id.
var ErrNotFound = errors.New("demstore: model not found")

// Store is a sqlite-backed DEM catalog.
type Store struct {
	*sql.DB
	path string
}

// ModelInfo is the catalog metadata for a stored model, without the grid.
type ModelInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CellSizeFt float64   `json:"cell_size_ft"`
	Cols       int       `json:"cols"`
	Rows       int       `json:"rows"`
	OriginX    float64   `json:"origin_x"`
	OriginY    float64   `json:"origin_y"`
	CreatedAt  time.Time `json:"created_at"`
}

// Open opens (creating if needed) the sqlite database at path. The schema is
// managed by MigrateUp; callers run migrations before first use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening dem store: %w", err)
	}
	// WAL keeps the analyze endpoint readable while an upload is in flight.
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}
	return &Store{DB: db, path: path}, nil
}

// Put stores the model under id, replacing any existing row.
func (s *Store) Put(ctx context.Context, id, name string, m *terrain.ElevationModel) error {
	blob, err := compressElevations(m.Elevations)
	if err != nil {
		return err
	}
	_, err = s.ExecContext(ctx, `
		INSERT INTO dems (id, name, cell_size_ft, cols, rows, origin_x, origin_y, elevations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			cell_size_ft = excluded.cell_size_ft,
			cols = excluded.cols,
			rows = excluded.rows,
			origin_x = excluded.origin_x,
			origin_y = excluded.origin_y,
			elevations = excluded.elevations
	`, id, name, m.CellSizeFt, m.Cols, m.Rows, m.OriginX, m.OriginY, blob)
	if err != nil {
		return fmt.Errorf("storing dem %s: %w", id, err)
	}
	return nil
}

// Get loads the model stored under id.
func (s *Store) Get(ctx context.Context, id string) (*terrain.ElevationModel, error) {
	row := s.QueryRowContext(ctx, `
		SELECT cell_size_ft, cols, rows, origin_x, origin_y, elevations
		FROM dems WHERE id = ?
	`, id)

	var cellSize, originX, originY float64
	var cols, rows int
	var blob []byte
	if err := row.Scan(&cellSize, &cols, &rows, &originX, &originY, &blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading dem %s: %w", id, err)
	}

	elevs, err := decompressElevations(blob, cols*rows)
	if err != nil {
		return nil, fmt.Errorf("loading dem %s: %w", id, err)
	}
	return terrain.NewElevationModel(cellSize, cols, rows, originX, originY, elevs)
}

// Info returns the catalog metadata for id without decoding the grid.
func (s *Store) Info(ctx context.Context, id string) (ModelInfo, error) {
	row := s.QueryRowContext(ctx, `
		SELECT id, name, cell_size_ft, cols, rows, origin_x, origin_y, created_at
		FROM dems WHERE id = ?
	`, id)
	var info ModelInfo
	err := row.Scan(&info.ID, &info.Name, &info.CellSizeFt, &info.Cols, &info.Rows,
		&info.OriginX, &info.OriginY, &info.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ModelInfo{}, ErrNotFound
	}
	if err != nil {
		return ModelInfo{}, fmt.Errorf("loading dem info %s: %w", id, err)
	}
	return info, nil
}

// List returns metadata for all stored models, newest first.
func (s *Store) List(ctx context.Context) ([]ModelInfo, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT id, name, cell_size_ft, cols, rows, origin_x, origin_y, created_at
		FROM dems ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ModelInfo
	for rows.Next() {
		var info ModelInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.CellSizeFt, &info.Cols, &info.Rows,
			&info.OriginX, &info.OriginY, &info.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes the model stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.ExecContext(ctx, "DELETE FROM dems WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting dem %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachAdminRoutes mounts the tailSQL live-query console and a backup
// endpoint under /debug/.
func (s *Store) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("creating tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://"+s.path, s.DB, &tailsql.DBOptions{
		Label: "DEM catalog",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("backup", "Create and download a backup of the DEM catalog", http.HandlerFunc(s.handleBackup))
	return nil
}

func (s *Store) handleBackup(w http.ResponseWriter, r *http.Request) {
	backupPath := fmt.Sprintf("dem-backup-%d.db", time.Now().Unix())
	if _, err := s.Exec("VACUUM INTO ?", backupPath); err != nil {
		http.Error(w, fmt.Sprintf("failed to create backup: %v", err), http.StatusInternalServerError)
		return
	}
	f, err := os.Open(backupPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to open backup: %v", err), http.StatusInternalServerError)
		return
	}
	defer func() {
		f.Close()
		if err := os.Remove(backupPath); err != nil {
			monitoring.Logf("failed to remove backup file: %v", err)
		}
	}()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.gz", backupPath))
	w.Header().Set("Content-Type", "application/octet-stream")

	gz := gzip.NewWriter(w)
	defer gz.Close()
	if _, err := io.Copy(gz, f); err != nil {
		monitoring.Logf("backup download aborted: %v", err)
	}
}

func compressElevations(elevs []float64) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := binary.Write(gz, binary.LittleEndian, elevs); err != nil {
		return nil, fmt.Errorf("encoding elevations: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("compressing elevations: %w", err)
	}
	return buf.Bytes(), nil
}

func decompressElevations(blob []byte, n int) ([]float64, error) {
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("decompressing elevations: %w", err)
	}
	defer gz.Close()

	elevs := make([]float64, n)
	if err := binary.Read(gz, binary.LittleEndian, elevs); err != nil {
		return nil, fmt.Errorf("decoding elevations: %w", err)
	}
	// A trailing payload means the stored grid does not match cols*rows.
	if _, err := gz.Read(make([]byte, 1)); err != io.EOF {
		return nil, errors.New("elevation blob larger than cols*rows")
	}
	return elevs, nil
}
