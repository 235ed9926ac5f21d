package swash

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
)

// Number of descriptive header lines SWASH writes before tabular data.
const outputHeaderLines = 7

// Gauge output table column order in timeseries.txt.
var timeseriesColumns = []string{
	"water_level",
	"x_velocity",
	"y_velocity",
	"velocity_magnitude",
	"velocity_direction",
	"vorticity",
}

// ParseOutputs converts the solver's gauge output tables in dir
// (timeseries.txt and wave_statistics.txt) to CSV files next to them.
// Rows in timeseries.txt cycle through the gauges: row i belongs to
// gauge i mod n at timestep index i div n. The missing-value codes -9
// (statistics) and -99 (breaking flag) become empty CSV fields.
func ParseOutputs(dir string, gauges []geom.Point) error {
	step, err := parseTimestep(filepath.Join(dir, "INPUT"))
	if err != nil {
		return err
	}
	if len(gauges) == 0 {
		return fmt.Errorf("swash: no gauges to attribute output rows to")
	}
	if err := parseTimeseries(dir, gauges, step); err != nil {
		return err
	}
	return parseWaveStatistics(dir, gauges)
}

func parseTimeseries(dir string, gauges []geom.Point, step float64) error {
	rows, err := readTable(filepath.Join(dir, "timeseries.txt"), len(timeseriesColumns))
	if err != nil {
		return err
	}

	out, err := os.Create(filepath.Join(dir, "timeseries.csv"))
	if err != nil {
		return err
	}
	w := csv.NewWriter(out)

	header := append([]string{"time", "gauge", "gauge_x_position", "gauge_y_position"},
		timeseriesColumns...)
	if err := w.Write(header); err != nil {
		out.Close()
		return err
	}
	for i, row := range rows {
		gaugeIdx := i % len(gauges)
		t := float64(i/len(gauges)) * step
		record := []string{
			strconv.FormatFloat(t, 'g', -1, 64),
			strconv.Itoa(gaugeIdx + 1),
			strconv.FormatFloat(gauges[gaugeIdx].X, 'g', -1, 64),
			strconv.FormatFloat(gauges[gaugeIdx].Y, 'g', -1, 64),
		}
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			out.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func parseWaveStatistics(dir string, gauges []geom.Point) error {
	rows, err := readTable(filepath.Join(dir, "wave_statistics.txt"), 3)
	if err != nil {
		return err
	}
	if len(rows) != len(gauges) {
		return fmt.Errorf(
			"swash: wave_statistics.txt has %d rows for %d gauges",
			len(rows), len(gauges),
		)
	}

	out, err := os.Create(filepath.Join(dir, "wave_statistics.csv"))
	if err != nil {
		return err
	}
	w := csv.NewWriter(out)

	header := []string{
		"gauge", "gauge_x_position", "gauge_y_position",
		"significant_wave_height", "wave_setup", "breaking_point",
	}
	if err := w.Write(header); err != nil {
		out.Close()
		return err
	}
	for i, row := range rows {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(gauges[i].X, 'g', -1, 64),
			strconv.FormatFloat(gauges[i].Y, 'g', -1, 64),
			missingOr(row[0], -9, strconv.FormatFloat(row[0], 'g', -1, 64)),
			missingOr(row[1], -9, strconv.FormatFloat(row[1], 'g', -1, 64)),
			missingOr(row[2], -99, strconv.FormatBool(row[2] == 1)),
		}
		if err := w.Write(record); err != nil {
			out.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func missingOr(v, code float64, formatted string) string {
	if v == code {
		return ""
	}
	return formatted
}

// readTable reads a SWASH output table: outputHeaderLines descriptive
// lines followed by whitespace-separated rows of cols floats each.
func readTable(path string, cols int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]float64
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		if line <= outputHeaderLines {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != cols {
			return nil, fmt.Errorf(
				"%s:%d: row has %d values, want %d", path, line, len(fields), cols,
			)
		}
		row := make([]float64, cols)
		for i, field := range fields {
			if row[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}
