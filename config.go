package swashmesh

import (
	"os"
	"path/filepath"

	"gopkg.in/gcfg.v1"
)

const ExampleMeshFile = `[Mesh]

#######################
# Optional Parameters #
#######################

# Target edge lengths in metres near features and in open water.
# LcFine = 10
# LcCoarse = 50

# Distance from a feature inside which edges stay at LcFine, and the
# distance at which they reach LcCoarse. FineRadius defaults to half the
# smaller grid spacing.
# FineRadius = 20
# TransitionDistance = 200

# Exponent controlling how fast edge length grows with depth in depth
# mode. Must be 1, 2 or 3.
# Interpolation = 3

# SizeMode selects how the mesh size field is built: "feature" grades by
# distance to shoreline and breakwater points, "depth" grades by water
# depth and wavelength.
# SizeMode = feature

# Projection selects how bathymetry is sampled at mesh nodes:
# "nearest" or "bilinear".
# Projection = nearest

# Incident wave period in seconds, used by depth mode to size the
# shoreline run-up band.
# WavePeriod = 8`

// MeshConfig holds the tunable meshing parameters. All fields are
// optional in the config file; unset values fall back to the defaults
// set by DefaultMeshWrapper.
type MeshConfig struct {
	LcFine, LcCoarse   float64
	FineRadius         float64
	TransitionDistance float64
	Interpolation      int
	SizeMode           string
	Projection         string
	WavePeriod         float64
}

// ConfigFileName is the optional per-case configuration file looked up
// in the case directory.
const ConfigFileName = "mesh.config"

func DefaultMeshWrapper() *MeshWrapper {
	con := MeshConfig{}
	con.LcFine = 10
	con.LcCoarse = 50
	con.TransitionDistance = 200
	con.Interpolation = 3
	con.SizeMode = "feature"
	con.Projection = "nearest"
	con.WavePeriod = 8
	return &MeshWrapper{con}
}

func (con *MeshConfig) ValidLcFine() bool {
	return con.LcFine > 0
}
func (con *MeshConfig) ValidLcCoarse() bool {
	return con.LcCoarse >= con.LcFine
}
func (con *MeshConfig) ValidFineRadius() bool {
	return con.FineRadius > 0
}
func (con *MeshConfig) ValidTransitionDistance() bool {
	return con.TransitionDistance > 0
}
func (con *MeshConfig) ValidInterpolation() bool {
	return con.Interpolation >= 1 && con.Interpolation <= 3
}
func (con *MeshConfig) ValidSizeMode() bool {
	return con.SizeMode == "feature" || con.SizeMode == "depth"
}
func (con *MeshConfig) ValidProjection() bool {
	return con.Projection == "nearest" || con.Projection == "bilinear"
}
func (con *MeshConfig) ValidWavePeriod() bool {
	return con.WavePeriod > 0
}

type MeshWrapper struct {
	Mesh MeshConfig
}

// LoadConfig returns the meshing parameters for a case directory:
// defaults overlaid with the directory's mesh.config file when one
// exists.
func LoadConfig(dir string) (*MeshConfig, error) {
	wrap := DefaultMeshWrapper()
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &wrap.Mesh, nil
	}
	if err := gcfg.ReadFileInto(wrap, path); err != nil {
		return nil, err
	}
	return &wrap.Mesh, nil
}
