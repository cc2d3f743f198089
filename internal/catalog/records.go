package catalog

import (
	"bytes"
	"encoding/json"
	"os"

	pErrors "github.com/zhubert/cardtray/internal/errors"
)

// ReadRecords reads an updater-format catalog file. A missing file is an
// empty catalog.
func ReadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, pErrors.E(pErrors.Op("catalog.ReadRecords"), pErrors.KindIO, path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, pErrors.CatalogParseFailed(path, err)
	}
	return records, nil
}

// WriteRecords writes records as indented JSON, leaving non-ASCII names
// and URL characters unescaped.
func WriteRecords(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return pErrors.E(pErrors.Op("catalog.WriteRecords"), pErrors.KindIO, path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return pErrors.E(pErrors.Op("catalog.WriteRecords"), pErrors.KindIO, path, err)
	}
	return nil
}
