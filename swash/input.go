// Package swash reads and rewrites SWASH control files and parses the
// solver's gauge output tables.
//
// The INPUT control file is a line-oriented keyword format. Only the
// directives this pipeline needs are interpreted; everything else is
// treated as opaque text.
package swash

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"swashmesh/grid"
)

// GridSpec is the regular input grid declared by the INPGRID BOTTOM
// directive: cell counts per axis and the per-axis resolution.
type GridSpec struct {
	XCells, YCells int
	Res            grid.Resolution
}

// ParseInput scans the INPUT file at path for the INPGRID BOTTOM
// directive and returns the grid geometry it declares. The directive
// layout is
//
//	INPGRID BOTTOM <xp> <yp> <alp> <x_cells> <y_cells> <x_res> <y_res>
//
// If several INPGRID BOTTOM lines are present the last one wins,
// matching solver behavior.
func ParseInput(path string) (*GridSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var spec *GridSpec
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if !strings.HasPrefix(text, "INPGRID BOTTOM") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 9 {
			return nil, fmt.Errorf(
				"%s:%d: INPGRID BOTTOM has %d fields, want at least 9",
				path, line, len(fields),
			)
		}
		s := &GridSpec{}
		if s.XCells, err = strconv.Atoi(fields[5]); err != nil {
			return nil, fmt.Errorf("%s:%d: x cell count: %w", path, line, err)
		}
		if s.YCells, err = strconv.Atoi(fields[6]); err != nil {
			return nil, fmt.Errorf("%s:%d: y cell count: %w", path, line, err)
		}
		if s.Res.Dx, err = strconv.ParseFloat(fields[7], 64); err != nil {
			return nil, fmt.Errorf("%s:%d: x resolution: %w", path, line, err)
		}
		if s.Res.Dy, err = strconv.ParseFloat(fields[8], 64); err != nil {
			return nil, fmt.Errorf("%s:%d: y resolution: %w", path, line, err)
		}
		spec = s
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if spec == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoGridDirective)
	}
	return spec, nil
}

// parseTimestep returns the timestep of the COMPUTE directive
// (COMPUTE <tbegin> <delta> <unit> <tend>).
func parseTimestep(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	step, found := 0.0, false
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if !strings.HasPrefix(text, "COMPUTE") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 3 {
			return 0, fmt.Errorf(
				"%s:%d: COMPUTE has %d fields, want at least 3",
				path, line, len(fields),
			)
		}
		if step, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return 0, fmt.Errorf("%s:%d: timestep: %w", path, line, err)
		}
		found = true
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	if !found {
		return 0, fmt.Errorf("%s: %w", path, ErrNoComputeDirective)
	}
	return step, nil
}

// Backup copies path to path+".bkp". It is called before every
// destructive rewrite so a failed rewrite stays recoverable. An
// existing backup is overwritten.
func Backup(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path + ".bkp")
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("backing up %s: %w", path, err)
	}
	return dst.Close()
}
