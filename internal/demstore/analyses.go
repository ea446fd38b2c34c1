package demstore

import (
	"context"
	"fmt"
	"time"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/pathscan"
)

// AnalysisRecord is one row of the analysis run history.
type AnalysisRecord struct {
	RunID            string    `json:"run_id"`
	DemID            string    `json:"dem_id"`
	DiscoveryPoints  int       `json:"discovery_points"`
	RefinementPoints int       `json:"refinement_points"`
	Hazards          int       `json:"hazards"`
	SafetyWaypoints  int       `json:"safety_waypoints"`
	CreatedAt        time.Time `json:"created_at"`
}

// RecordAnalysis appends a run summary to the history.
func (s *Store) RecordAnalysis(ctx context.Context, runID, demID string, m pathscan.Metrics) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO analyses (run_id, dem_id, discovery_points, refinement_points, hazards, safety_waypoints)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, demID, m.DiscoveryPointsUsed, m.RefinementPointsUsed, m.HazardsDetected, m.SafetyWaypointCount)
	if err != nil {
		return fmt.Errorf("recording analysis %s: %w", runID, err)
	}
	return nil
}

// ListAnalyses returns run summaries for a DEM, newest first, capped at limit.
func (s *Store) ListAnalyses(ctx context.Context, demID string, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.QueryContext(ctx, `
		SELECT run_id, dem_id, discovery_points, refinement_points, hazards, safety_waypoints, created_at
		FROM analyses WHERE dem_id = ? ORDER BY created_at DESC LIMIT ?
	`, demID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		if err := rows.Scan(&rec.RunID, &rec.DemID, &rec.DiscoveryPoints, &rec.RefinementPoints,
			&rec.Hazards, &rec.SafetyWaypoints, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
