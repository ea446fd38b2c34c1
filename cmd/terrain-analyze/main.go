// terrain-analyze runs the terrain hazard pipeline against a stored or
// file-based elevation model and prints the analysis result as JSON.
//
// Usage:
//
//	terrain-analyze -db dems.db -dem <id> -path path.geojson [-png profile.png]
//	terrain-analyze -dem-file grid.json -path path.geojson
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/config"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/demstore"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/monitoring"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/pathscan"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/profileplot"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
)

var (
	dbFile        = flag.String("db", "dems.db", "Path to the DEM catalog database")
	migrationsDir = flag.String("migrations", "db/migrations", "Path to the schema migrations directory")
	demID         = flag.String("dem", "", "DEM id to analyze against")
	demFile       = flag.String("dem-file", "", "JSON grid file to analyze against (instead of -dem)")
	pathFile      = flag.String("path", "", "GeoJSON file containing the flight path LineString")
	configFile    = flag.String("config", "", "Path to a tuning config JSON file")
	minAgl        = flag.Float64("min-agl", 0, "Minimum AGL in feet (0 = unset)")
	maxAgl        = flag.Float64("max-agl", 0, "Maximum AGL in feet (0 = unset)")
	pngOut        = flag.String("png", "", "Write an elevation profile PNG to this file")
	verbose       = flag.Bool("v", false, "Verbose logging")
)

// gridFile mirrors the /api/dem upload schema for offline use.
type gridFile struct {
	CellSizeFt float64   `json:"cell_size_ft"`
	Cols       int       `json:"cols"`
	Rows       int       `json:"rows"`
	OriginX    float64   `json:"origin_x"`
	OriginY    float64   `json:"origin_y"`
	Elevations []float64 `json:"elevations"`
}

func loadModel(ctx context.Context) (*terrain.ElevationModel, error) {
	if *demFile != "" {
		data, err := os.ReadFile(*demFile)
		if err != nil {
			return nil, fmt.Errorf("reading grid file: %w", err)
		}
		var gf gridFile
		if err := json.Unmarshal(data, &gf); err != nil {
			return nil, fmt.Errorf("parsing grid file: %w", err)
		}
		return terrain.NewElevationModel(gf.CellSizeFt, gf.Cols, gf.Rows, gf.OriginX, gf.OriginY, gf.Elevations)
	}

	if *demID == "" {
		return nil, fmt.Errorf("either -dem or -dem-file is required")
	}
	store, err := demstore.Open(*dbFile)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	if err := store.MigrateUp(*migrationsDir); err != nil {
		return nil, err
	}
	return store.Get(ctx, *demID)
}

func loadPath() ([]pathscan.PathVertex, error) {
	if *pathFile == "" {
		return nil, fmt.Errorf("-path is required")
	}
	data, err := os.ReadFile(*pathFile)
	if err != nil {
		return nil, fmt.Errorf("reading path file: %w", err)
	}
	geom, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("parsing path geometry: %w", err)
	}
	ls, ok := geom.Geometry().(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("path must be a LineString, got %s", geom.Type)
	}
	verts := make([]pathscan.PathVertex, len(ls))
	for i, pt := range ls {
		verts[i] = pathscan.PathVertex{X: pt.X(), Y: pt.Y()}
	}
	return verts, nil
}

func main() {
	flag.Parse()
	monitoring.Verbose = *verbose

	cfg := config.EmptyTuningConfig()
	if *configFile != "" {
		var err error
		cfg, err = config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
	}

	ctx := context.Background()
	model, err := loadModel(ctx)
	if err != nil {
		log.Fatalf("failed to load elevation model: %v", err)
	}
	verts, err := loadPath()
	if err != nil {
		log.Fatalf("failed to load path: %v", err)
	}

	agl := pathscan.AglConstraints{}
	if *minAgl > 0 {
		agl.MinAglFt = minAgl
	}
	if *maxAgl > 0 {
		agl.MaxAglFt = maxAgl
	}

	res, err := pathscan.Analyze(verts, model, agl, cfg.Pathscan())
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	if *pngOut != "" {
		if err := profileplot.SavePNG(res, *pngOut); err != nil {
			log.Fatalf("failed to write profile: %v", err)
		}
		log.Printf("wrote elevation profile to %s", *pngOut)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
}
