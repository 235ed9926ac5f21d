package triangle

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
)

// ReadNode reads a node file back into node coordinates and boundary
// markers, both indexed by node id minus one. Node ids must run
// contiguously from 1 in file order.
func ReadNode(path string) ([]geom.Point, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrBadHeader)
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 4 || header[1] != "2" || header[2] != "0" || header[3] != "1" {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrBadHeader)
	}
	n, err := strconv.Atoi(header[0])
	if err != nil || n < 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrBadHeader)
	}

	nodes := make([]geom.Point, 0, n)
	markers := make([]int, 0, n)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, nil, fmt.Errorf("%s: line %d: expected 4 fields, got %d",
				path, len(nodes)+2, len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id != len(nodes)+1 {
			return nil, nil, fmt.Errorf("%s: line %d: %w",
				path, len(nodes)+2, ErrBadNodeID)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: node %d: %v", path, id, err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: node %d: %v", path, id, err)
		}
		marker, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: node %d: %v", path, id, err)
		}
		nodes = append(nodes, geom.Point{X: x, Y: y})
		markers = append(markers, marker)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if len(nodes) != n {
		return nil, nil, fmt.Errorf("%s: header says %d nodes, found %d: %w",
			path, n, len(nodes), ErrBadHeader)
	}
	return nodes, markers, nil
}
