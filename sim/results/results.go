// Package results implements the line-oriented plain-text results formats:
// (temperature, value) series files and whole-lattice snapshot files.
// This package has no dependency on the simulation engine beyond the Observable name.
package results

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ising-sim/ising-sim/sim"
)

// Point is one line of a series file.
type Point struct {
	Temperature float64
	Value       float64
}

// Sink receives computed results. Implementations report failures as errors;
// callers decide whether to continue.
type Sink interface {
	WriteSeries(obs sim.Observable, size int, points []Point) error
	WriteSnapshot(size int, temperature float64, spins [][]int) error
}

// SeriesFileName returns magnetization_file_L{L}.txt or heat_file_L{L}.txt.
func SeriesFileName(obs sim.Observable, size int) string {
	return fmt.Sprintf("%s_file_L%d.txt", obs, size)
}

// SnapshotFileName returns config_L={L}_T={T}.txt. Whole-number temperatures
// keep a ".0" suffix (config_L=8_T=1.0.txt) so the names match the plotting
// scripts.
func SnapshotFileName(size int, temperature float64) string {
	return fmt.Sprintf("config_L=%d_T=%s.txt", size, formatSnapshotTemperature(temperature))
}

func formatSnapshotTemperature(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FileSink writes results files into Dir.
type FileSink struct {
	Dir string
}

// NewFileSink creates a FileSink rooted at dir ("" means the working directory).
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// WriteSeries writes one "T value" line per point, in order.
func (f *FileSink) WriteSeries(obs sim.Observable, size int, points []Point) error {
	path := filepath.Join(f.Dir, SeriesFileName(obs, size))
	return writeFile(path, func(w *bufio.Writer) error {
		for _, p := range points {
			if _, err := fmt.Fprintf(w, "%s %s\n", formatFloat(p.Temperature), formatFloat(p.Value)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSnapshot writes L lines of L space-separated spins.
func (f *FileSink) WriteSnapshot(size int, temperature float64, spins [][]int) error {
	path := filepath.Join(f.Dir, SnapshotFileName(size, temperature))
	return writeFile(path, func(w *bufio.Writer) error {
		return EncodeSnapshot(w, spins)
	})
}

// EncodeSnapshot writes spins as rows of space-separated signed integers.
func EncodeSnapshot(w *bufio.Writer, spins [][]int) error {
	for _, row := range spins {
		for j, s := range row {
			if j > 0 {
				if err := w.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := w.WriteString(strconv.Itoa(s)); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeFile opens path, lets body fill a buffered writer, and always closes
// the file. Flush and close errors are joined into the returned error.
func writeFile(path string, body func(w *bufio.Writer) error) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("closing %s: %w", path, closeErr))
		}
	}()

	writer := bufio.NewWriter(file)
	if err := body(writer); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	logrus.Debugf("Successfully wrote to '%s'", path)
	return nil
}
