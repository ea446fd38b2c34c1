package demstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/pathscan"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/testutil"
)

const migrationsDir = "../../db/migrations"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "dem.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.MigrateUp(migrationsDir); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	return s
}

func rampGrid(t *testing.T) *terrain.ElevationModel {
	t.Helper()
	const cols, rows = 10, 4
	elevs := make([]float64, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			elevs[r*cols+c] = 100 * float64(c)
		}
	}
	m, err := terrain.NewElevationModel(50, cols, rows, -25, -75, elevs)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	want := rampGrid(t)

	id := uuid.NewString()
	testutil.AssertNoError(t, s.Put(ctx, id, "test ramp", want))

	got, err := s.Get(ctx, id)
	testutil.AssertNoError(t, err)
	if got.Cols != want.Cols || got.Rows != want.Rows || got.CellSizeFt != want.CellSizeFt {
		t.Errorf("grid shape mismatch: got %dx%d@%v, want %dx%d@%v",
			got.Cols, got.Rows, got.CellSizeFt, want.Cols, want.Rows, want.CellSizeFt)
	}
	for i := range want.Elevations {
		if got.Elevations[i] != want.Elevations[i] {
			t.Fatalf("elevation %d = %v, want %v", i, got.Elevations[i], want.Elevations[i])
		}
	}
}

func TestPutReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	testutil.AssertNoError(t, s.Put(ctx, id, "first", rampGrid(t)))
	testutil.AssertNoError(t, s.Put(ctx, id, "second", testutil.FlatModel(t, 1000)))

	info, err := s.Info(ctx, id)
	testutil.AssertNoError(t, err)
	if info.Name != "second" {
		t.Errorf("name = %q, want 'second'", info.Name)
	}
	if info.Cols != 17 {
		t.Errorf("cols = %d, want 17 (replaced grid)", info.Cols)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Same-second inserts may tie on created_at; just verify membership
	// and count.
	ids := map[string]bool{}
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		ids[id] = true
		testutil.AssertNoError(t, s.Put(ctx, id, "grid", rampGrid(t)))
	}

	infos, err := s.List(ctx)
	testutil.AssertNoError(t, err)
	if len(infos) != 3 {
		t.Fatalf("got %d models, want 3", len(infos))
	}
	for _, info := range infos {
		if !ids[info.ID] {
			t.Errorf("unexpected id %s in listing", info.ID)
		}
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	testutil.AssertNoError(t, s.Put(ctx, id, "doomed", rampGrid(t)))
	testutil.AssertNoError(t, s.Delete(ctx, id))

	if _, err := s.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestAnalysisHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	demID := uuid.NewString()
	testutil.AssertNoError(t, s.Put(ctx, demID, "grid", rampGrid(t)))

	m := pathscan.Metrics{
		DiscoveryPointsUsed:  5,
		RefinementPointsUsed: 8,
		TotalPointsUsed:      13,
		HazardsDetected:      1,
		SafetyWaypointCount:  1,
	}
	runID := uuid.NewString()
	testutil.AssertNoError(t, s.RecordAnalysis(ctx, runID, demID, m))

	recs, err := s.ListAnalyses(ctx, demID, 10)
	testutil.AssertNoError(t, err)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].RunID != runID || recs[0].RefinementPoints != 8 || recs[0].SafetyWaypoints != 1 {
		t.Errorf("record = %+v", recs[0])
	}

	// Other DEMs see nothing.
	other, err := s.ListAnalyses(ctx, uuid.NewString(), 10)
	testutil.AssertNoError(t, err)
	if len(other) != 0 {
		t.Errorf("got %d records for unrelated dem, want 0", len(other))
	}
}

func TestMigrateVersionAndDown(t *testing.T) {
	s := openTestStore(t)

	version, dirty, err := s.MigrateVersion(migrationsDir)
	testutil.AssertNoError(t, err)
	if dirty {
		t.Error("schema reported dirty after clean migration")
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	testutil.AssertNoError(t, s.MigrateDown(migrationsDir))
	version, _, err = s.MigrateVersion(migrationsDir)
	testutil.AssertNoError(t, err)
	if version != 1 {
		t.Errorf("version after down = %d, want 1", version)
	}
}
