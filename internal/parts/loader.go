package parts

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"coreselect/internal/shared/telemetry"
)

//go:embed data/*.csv
var sampleData embed.FS

// LoadDir loads one CSV per category from dir. A missing file leaves the
// category empty. When dir holds no catalog files at all, the bundled
// sample catalog is used instead.
func LoadDir(dir string) (*Catalog, error) {
	if strings.TrimSpace(dir) != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			cat, found, err := LoadFS(os.DirFS(dir), ".")
			if err != nil {
				return nil, err
			}
			if found > 0 {
				return cat, nil
			}
		}
	}
	telemetry.Info("parts.sample_catalog", map[string]any{"dir": dir})
	return Sample()
}

// Sample returns the catalog bundled with the binary.
func Sample() (*Catalog, error) {
	cat, _, err := LoadFS(sampleData, "data")
	return cat, err
}

// LoadFS loads catalog CSVs from dir inside fsys and reports how many
// category files were found.
func LoadFS(fsys fs.FS, dir string) (*Catalog, int, error) {
	byCategory := make(map[Category][]Part, len(AllCategories))
	found := 0
	for _, cat := range AllCategories {
		f, err := fsys.Open(path.Join(dir, cat.FileName()))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				telemetry.Warn("parts.file_missing", map[string]any{"file": cat.FileName()})
				continue
			}
			return nil, 0, fmt.Errorf("open %s: %w", cat.FileName(), err)
		}
		list, err := ParseCSV(f)
		_ = f.Close()
		if err != nil {
			return nil, 0, fmt.Errorf("parse %s: %w", cat.FileName(), err)
		}
		byCategory[cat] = list
		found++
	}
	return NewCatalog(byCategory), found, nil
}

// ParseCSV reads a header row followed by part rows. The header must contain
// name and price columns; rows with an unparsable price are skipped.
func ParseCSV(r io.Reader) ([]Part, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Part{}, nil
		}
		return nil, err
	}
	nameIdx, priceIdx := -1, -1
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		switch strings.ToLower(header[i]) {
		case "name":
			nameIdx = i
		case "price":
			priceIdx = i
		}
	}
	if nameIdx < 0 || priceIdx < 0 {
		return nil, fmt.Errorf("header must include name and price columns")
	}

	out := []Part{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if nameIdx >= len(row) || priceIdx >= len(row) {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[priceIdx]), 64)
		if err != nil {
			continue
		}
		part := Part{
			Name:       strings.TrimSpace(row[nameIdx]),
			Price:      price,
			Attributes: map[string]string{},
		}
		for i, col := range header {
			if i == nameIdx || i == priceIdx || i >= len(row) {
				continue
			}
			part.Attributes[col] = strings.TrimSpace(row[i])
		}
		out = append(out, part)
	}
	return out, nil
}
