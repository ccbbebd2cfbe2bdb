// Package pointset persists generated point sets: CSV rows with an x,y header,
// optional zstd compression, and a YAML metadata sidecar describing the run.
package pointset

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zstd"
	"github.com/paulmach/orb"
)

type record struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
}

// Write encodes points as CSV with an x,y header row, preserving order.
func Write(w io.Writer, points []orb.Point) error {
	records := make([]record, len(points))
	for i, p := range points {
		records[i] = record{X: p[0], Y: p[1]}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("encoding points csv: %w", err)
	}
	return nil
}

// Read decodes a CSV point list written by Write.
func Read(r io.Reader) ([]orb.Point, error) {
	var records []record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("decoding points csv: %w", err)
	}
	points := make([]orb.Point, len(records))
	for i, rec := range records {
		points[i] = orb.Point{rec.X, rec.Y}
	}
	return points, nil
}

// WriteFile writes points to a CSV file, zstd-compressed when the name ends in
// .zst.
func WriteFile(name string, points []orb.Point) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating points file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	if strings.HasSuffix(name, ".zst") {
		enc, err := zstd.NewWriter(file)
		if err != nil {
			return fmt.Errorf("creating zstd writer: %w", err)
		}
		defer enc.Close()
		w = enc
	}

	return Write(w, points)
}

// ReadFile loads a point set saved by WriteFile, transparently decompressing
// .zst files.
func ReadFile(name string) ([]orb.Point, error) {
	reader, err := openReader(name)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	points, err := Read(reader)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded points", "file", name, "count", len(points))
	return points, nil
}

func openReader(name string) (io.ReadCloser, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening points file: %w", err)
	}

	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	}

	return file, nil
}
