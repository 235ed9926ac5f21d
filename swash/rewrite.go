package swash

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Side numbering used by the unstructured boundary directives:
// 1=west, 2=north, 3=east, 4=south. This matches the boundary markers
// written into mesh.node.
var sideNumbers = []struct {
	name   string
	number string
}{
	{"EAST", "3"},
	{"SOUTH", "4"},
	{"WEST", "1"},
	{"NORTH", "2"},
}

// RewriteInput converts the regular-grid directives of the INPUT file
// at path to their unstructured-mesh equivalents, in place. The
// original file is copied to path+".bkp" first.
//
// The transform is purely textual:
//   - a "CGRID ... REGULAR ..." line becomes the two lines
//     "CGRID UNSTRUCTURED" and "READGRID UNSTRUC TRIANGLE 'mesh'";
//   - a BOUND line has its compass side name replaced with
//     "SIDE <n> CCW";
//   - a SPONGELAYER line has its compass side name replaced with the
//     side number alone;
//   - every other line passes through unchanged.
func RewriteInput(path string) error {
	if err := Backup(path); err != nil {
		return err
	}

	in, err := os.Open(path + ".bkp")
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		for _, line := range RewriteLine(scanner.Text()) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				out.Close()
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		out.Close()
		return fmt.Errorf("rewriting %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// RewriteLine maps one INPUT line to its replacement lines.
func RewriteLine(line string) []string {
	switch {
	case strings.HasPrefix(line, "CGRID") && strings.Contains(line, "REGULAR"):
		return []string{"CGRID UNSTRUCTURED", "READGRID UNSTRUC TRIANGLE 'mesh'"}
	case strings.HasPrefix(line, "BOUND"):
		return []string{replaceSide(line, true)}
	case strings.HasPrefix(line, "SPONGELAYER"):
		return []string{replaceSide(line, false)}
	}
	return []string{line}
}

// replaceSide substitutes the first compass side name found in line
// with its side number, prefixed by "SIDE " and suffixed by " CCW"
// when ccw is set. The replacement is a substring replacement, so
// names embedded in longer words are rewritten too (BOUND SHOREEAST
// becomes BOUND SHORESIDE 3 CCW).
func replaceSide(line string, ccw bool) string {
	for _, side := range sideNumbers {
		if !strings.Contains(line, side.name) {
			continue
		}
		repl := side.number
		if ccw {
			repl = "SIDE " + side.number + " CCW"
		}
		return strings.Replace(line, side.name, repl, 1)
	}
	return line
}
