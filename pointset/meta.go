package pointset

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Meta is the YAML sidecar written next to a point file; it carries everything
// needed to reproduce the run.
type Meta struct {
	RunID     string    `yaml:"run_id"`
	Mode      int       `yaml:"mode"`
	Value     float64   `yaml:"value"`
	Width     float64   `yaml:"width"`
	Height    float64   `yaml:"height"`
	Seed      int64     `yaml:"seed"`
	Attempts  int       `yaml:"attempts,omitempty"`
	Count     int       `yaml:"count"`
	CreatedAt time.Time `yaml:"created_at"`
}

// NewMeta stamps a fresh run id and creation time.
func NewMeta(mode int, value, width, height float64, seed int64) Meta {
	return Meta{
		RunID:     uuid.NewString(),
		Mode:      mode,
		Value:     value,
		Width:     width,
		Height:    height,
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
	}
}

// MetaPath derives the sidecar path for a points file:
// points.csv -> points.meta.yaml, points.csv.zst -> points.meta.yaml.
func MetaPath(pointsPath string) string {
	p := strings.TrimSuffix(pointsPath, ".zst")
	p = strings.TrimSuffix(p, ".csv")
	return p + ".meta.yaml"
}

// WriteFile saves the metadata as YAML.
func (m Meta) WriteFile(name string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// ReadMetaFile loads a metadata sidecar.
func ReadMetaFile(name string) (Meta, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Meta{}, fmt.Errorf("reading metadata: %w", err)
	}
	var m Meta
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Meta{}, fmt.Errorf("decoding metadata: %w", err)
	}
	return m, nil
}
