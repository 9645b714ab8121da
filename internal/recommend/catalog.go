package recommend

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Pose is one catalog entry: how to do the pose and where to watch it.
type Pose struct {
	Name  string
	Steps string
	Video string
}

// Catalog indexes poses by normalised name.
type Catalog map[string]Pose

// NormalizeName lowercases a pose name and joins its words with underscores.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// LoadCatalog reads a pose CSV file with Pose, Step and Video columns.
func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pose catalog: %w", err)
	}
	defer f.Close()

	return ReadCatalog(f)
}

// ReadCatalog parses a pose CSV from r. Column order is taken from the header.
func ReadCatalog(r io.Reader) (Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))] = i
	}
	for _, required := range []string{"Pose", "Step", "Video"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog is missing the %q column", required)
		}
	}

	field := func(rec []string, name string) string {
		if i := cols[name]; i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	catalog := Catalog{}
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog line %d: %w", line, err)
		}

		name := field(rec, "Pose")
		if name == "" {
			continue
		}
		catalog[NormalizeName(name)] = Pose{
			Name:  name,
			Steps: field(rec, "Step"),
			Video: field(rec, "Video"),
		}
	}
	return catalog, nil
}
