package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
)

// Record is one CSV row keyed by column header
type Record map[string]string

// Catalog is the immutable reference dataset loaded at startup. It is
// read-only for the process lifetime; a reload requires a restart.
type Catalog struct {
	Tags       []Record
	Categories []Record
	Colours    []Record
	Brands     []Record
	Products   []Record
}

// Load reads the five catalog CSV files from dir. Any missing or
// malformed file is a fatal CatalogLoadError.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{}
	files := []struct {
		name string
		dst  *[]Record
	}{
		{"tags.csv", &c.Tags},
		{"categories.csv", &c.Categories},
		{"colours.csv", &c.Colours},
		{"brands.csv", &c.Brands},
		{"products.csv", &c.Products},
	}

	for _, f := range files {
		records, err := loadFile(filepath.Join(dir, f.name))
		if err != nil {
			return nil, &domain.CatalogLoadError{File: f.name, Err: err}
		}
		*f.dst = records
	}

	return c, nil
}

func loadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}
		records = append(records, rec)
	}

	return records, nil
}

// ChatContext renders all five collections as JSON for the chat persona
func (c *Catalog) ChatContext() string {
	return mustJSON(map[string][]Record{
		"tags":       c.Tags,
		"categories": c.Categories,
		"colors":     c.Colours,
		"brands":     c.Brands,
		"products":   c.Products,
	})
}

// ProductsContext renders only the product list for recommendation matching
func (c *Catalog) ProductsContext() string {
	return mustJSON(c.Products)
}

// AnalysisContext renders the subset used by the image analyst
// (tags, categories and colours only).
func (c *Catalog) AnalysisContext() string {
	return mustJSON(map[string][]Record{
		"tags":       c.Tags,
		"categories": c.Categories,
		"colors":     c.Colours,
	})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		// Record maps of strings always marshal
		return "{}"
	}
	return string(b)
}
