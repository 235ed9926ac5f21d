// Package swashmesh converts regular-grid SWASH cases to unstructured
// triangular meshes: it extracts shoreline and breakwater geometry from
// the bathymetry, generates a feature- or depth-graded mesh, and
// rewrites the case files so the solver runs on the new mesh.
package swashmesh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	log "github.com/sirupsen/logrus"

	"swashmesh/engine"
	"swashmesh/feature"
	"swashmesh/grid"
	"swashmesh/plot"
	"swashmesh/project"
	"swashmesh/sizefield"
	"swashmesh/swash"
	"swashmesh/triangle"
)

const (
	InputFileName      = "INPUT"
	BathymetryFileName = "bathymetry.txt"
	PorosityFileName   = "porosity.txt"
	GaugeFileName      = "gauge_positions.txt"
	NodeFileName       = "mesh.node"
	EleFileName        = "mesh.ele"
	DiagramFileName    = "diagram.png"
)

// verifyFiles checks that every named file exists in dir before the
// pipeline writes anything, so a failed run never leaves partial mesh
// files behind.
func verifyFiles(dir string, names ...string) error {
	var missing []string
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFile, strings.Join(missing, ", "))
	}
	return nil
}

func checkConfig(cfg *MeshConfig) error {
	if !cfg.ValidLcFine() {
		return fmt.Errorf("swashmesh: LcFine must be positive, got %g", cfg.LcFine)
	}
	if !cfg.ValidLcCoarse() {
		return fmt.Errorf("swashmesh: LcCoarse %g must be at least LcFine %g",
			cfg.LcCoarse, cfg.LcFine)
	}
	if !cfg.ValidTransitionDistance() {
		return fmt.Errorf("swashmesh: transition distance must be positive, got %g",
			cfg.TransitionDistance)
	}
	if !cfg.ValidInterpolation() {
		return fmt.Errorf("swashmesh: interpolation order %d out of range [1, 3]",
			cfg.Interpolation)
	}
	if !cfg.ValidSizeMode() {
		return fmt.Errorf("swashmesh: unknown size mode %q", cfg.SizeMode)
	}
	if !cfg.ValidProjection() {
		return fmt.Errorf("swashmesh: unknown projection mode %q", cfg.Projection)
	}
	if cfg.SizeMode == "depth" && !cfg.ValidWavePeriod() {
		return fmt.Errorf("swashmesh: wave period must be positive, got %g",
			cfg.WavePeriod)
	}
	return nil
}

// Create generates mesh.node, mesh.ele and diagram.png for the case in
// dir using the given engine. All input validation happens before the
// first byte is written.
func Create(dir string, cfg *MeshConfig, eng engine.Engine) error {
	if err := checkConfig(cfg); err != nil {
		return err
	}
	if err := verifyFiles(dir, InputFileName, BathymetryFileName); err != nil {
		return err
	}

	spec, err := swash.ParseInput(filepath.Join(dir, InputFileName))
	if err != nil {
		return err
	}
	bathymetry, err := grid.Load(filepath.Join(dir, BathymetryFileName))
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"rows": bathymetry.Rows(), "cols": bathymetry.Cols(),
		"dx": spec.Res.Dx, "dy": spec.Res.Dy,
	}).Info("loaded bathymetry")

	porosity, err := loadPorosity(dir)
	if err != nil {
		return err
	}

	shoreline := feature.Shoreline(bathymetry, spec.Res)
	var breakwaters []geom.Point
	if porosity != nil {
		breakwaters = feature.BreakwatersFromPorosity(porosity, spec.Res)
	} else {
		breakwaters = feature.BreakwatersFromBathymetry(bathymetry, spec.Res)
	}
	gauges, err := loadGauges(dir)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"shoreline": len(shoreline), "breakwaters": len(breakwaters),
		"gauges": len(gauges),
	}).Info("extracted features")

	fineRadius := cfg.FineRadius
	if !cfg.ValidFineRadius() {
		fineRadius = min(spec.Res.Dx, spec.Res.Dy) / 2
	}
	field, err := buildField(cfg, fineRadius, bathymetry, spec.Res,
		shoreline, breakwaters, gauges)
	if err != nil {
		return err
	}

	domain := &geom.Bounds{
		Min: geom.Point{X: 0, Y: 0},
		Max: geom.Point{
			X: float64(spec.XCells) * spec.Res.Dx,
			Y: float64(spec.YCells) * spec.Res.Dy,
		},
	}
	session, err := eng.Open()
	if err != nil {
		return err
	}
	defer session.Close()

	mesh, err := session.Generate(domain, shoreline, field)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"nodes": len(mesh.Nodes), "triangles": len(mesh.Triangles),
	}).Info("generated mesh")

	if err := triangle.WriteNode(filepath.Join(dir, NodeFileName), mesh.Nodes, domain); err != nil {
		return err
	}
	if err := triangle.WriteEle(filepath.Join(dir, EleFileName), mesh.Nodes, mesh.Triangles); err != nil {
		return err
	}

	diagram := filepath.Join(dir, DiagramFileName)
	if err := plot.Diagram(diagram, bathymetry, spec.Res,
		shoreline, breakwaters, gauges); err != nil {
		log.WithError(err).Warn("could not render diagram")
	}
	return nil
}

// Apply rewrites the case in dir to run on the generated mesh: the
// bathymetry (and porosity, when present) grids become per-node value
// files and the INPUT directives switch to the unstructured grid. Every
// rewritten file leaves a .bkp copy of its original bytes.
func Apply(dir string, cfg *MeshConfig) error {
	if err := checkConfig(cfg); err != nil {
		return err
	}
	if err := verifyFiles(dir, InputFileName, NodeFileName, BathymetryFileName); err != nil {
		return err
	}

	nodes, _, err := triangle.ReadNode(filepath.Join(dir, NodeFileName))
	if err != nil {
		return err
	}
	spec, err := swash.ParseInput(filepath.Join(dir, InputFileName))
	if err != nil {
		return err
	}
	mode, err := project.ParseMode(cfg.Projection)
	if err != nil {
		return err
	}

	fields := []string{BathymetryFileName}
	if _, err := os.Stat(filepath.Join(dir, PorosityFileName)); err == nil {
		fields = append(fields, PorosityFileName)
	}
	for _, name := range fields {
		path := filepath.Join(dir, name)
		g, err := grid.Load(path)
		if err != nil {
			return err
		}
		vals, err := project.NewProjector(g, spec.Res, mode).Project(nodes)
		if err != nil {
			return fmt.Errorf("projecting %s: %w", name, err)
		}
		if err := swash.Backup(path); err != nil {
			return err
		}
		if err := project.WriteValues(path, vals); err != nil {
			return err
		}
		log.WithFields(log.Fields{"file": name, "nodes": len(vals)}).
			Info("projected grid onto mesh")
	}

	return swash.RewriteInput(filepath.Join(dir, InputFileName))
}

func buildField(
	cfg *MeshConfig, fineRadius float64,
	bathymetry *grid.Grid, res grid.Resolution,
	shoreline, breakwaters, gauges []geom.Point,
) (sizefield.Field, error) {
	switch cfg.SizeMode {
	case "feature":
		if len(shoreline) == 0 {
			return nil, feature.ErrNoShoreline
		}
		points := append(append([]geom.Point{}, breakwaters...), gauges...)
		return sizefield.NewControlPointField(
			points, cfg.LcFine, cfg.LcCoarse, fineRadius, cfg.TransitionDistance,
		), nil
	case "depth":
		return sizefield.NewDepthGraded(
			bathymetry, res, shoreline, breakwaters,
			cfg.LcFine, cfg.LcCoarse, fineRadius,
			cfg.Interpolation, cfg.WavePeriod,
		)
	}
	return nil, fmt.Errorf("swashmesh: unknown size mode %q", cfg.SizeMode)
}

func loadPorosity(dir string) (*grid.Grid, error) {
	path := filepath.Join(dir, PorosityFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	g, err := grid.Load(path)
	if err != nil {
		return nil, err
	}
	outOfRange := 0
	for _, v := range g.Values() {
		if v < 0 || v > 1 {
			outOfRange++
		}
	}
	if outOfRange > 0 {
		log.WithField("cells", outOfRange).
			Warn("porosity values outside [0, 1]")
	}
	return g, nil
}

func loadGauges(dir string) ([]geom.Point, error) {
	path := filepath.Join(dir, GaugeFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return feature.ReadGauges(path)
}
