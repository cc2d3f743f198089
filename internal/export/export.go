// Package export writes the contents of a frame's trays to disk or text.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	pErrors "github.com/zhubert/cardtray/internal/errors"
	"github.com/zhubert/cardtray/internal/tray"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

// Entry is one tray member.
type Entry struct {
	Tray     string `json:"tray" yaml:"tray"`
	Position int    `json:"position" yaml:"position"`
	Name     string `json:"name" yaml:"name"`
	Image    string `json:"image" yaml:"image"`
	Link     string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Selection is a snapshot of both trays of a frame.
type Selection struct {
	Frame      string  `json:"frame" yaml:"frame"`
	ExportedAt string  `json:"exported_at" yaml:"exported_at"`
	Count      int     `json:"count" yaml:"count"`
	Capacity   int     `json:"capacity" yaml:"capacity"`
	Percentage string  `json:"percentage" yaml:"percentage"`
	Entries    []Entry `json:"entries" yaml:"entries"`
}

// Snapshot collects the trays of m. names maps each tray to its label;
// missing labels fall back to the tray ID.
func Snapshot(frameID string, m *tray.Manager, names map[tray.ID]string, now time.Time) Selection {
	count := m.Recount()
	sel := Selection{
		Frame:      frameID,
		ExportedAt: now.Format(time.RFC3339),
		Count:      count.Count,
		Capacity:   count.Capacity,
		Percentage: count.PercentString(),
		Entries:    []Entry{},
	}

	for _, id := range []tray.ID{tray.Left, tray.Right} {
		label := names[id]
		if label == "" {
			label = string(id)
		}
		for i, t := range m.Tray(id) {
			sel.Entries = append(sel.Entries, Entry{
				Tray:     label,
				Position: i + 1,
				Name:     t.Item.DisplayName,
				Image:    t.Item.ImagePath,
				Link:     t.Item.Link,
			})
		}
	}
	return sel
}

// JSON renders the selection as indented JSON.
func JSON(sel Selection) ([]byte, error) {
	data, err := json.MarshalIndent(sel, "", "  ")
	if err != nil {
		return nil, pErrors.E(pErrors.Op("export.JSON"), pErrors.KindIO, err)
	}
	return append(data, '\n'), nil
}

// YAML renders the selection as YAML.
func YAML(sel Selection) ([]byte, error) {
	data, err := yaml.Marshal(sel)
	if err != nil {
		return nil, pErrors.E(pErrors.Op("export.YAML"), pErrors.KindIO, err)
	}
	return data, nil
}

// Text renders the selection as plain lines, one card per line, grouped by tray.
func Text(sel Selection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d/%d (%s)\n", sel.Frame, sel.Count, sel.Capacity, sel.Percentage)

	current := ""
	for _, e := range sel.Entries {
		if e.Tray != current {
			current = e.Tray
			fmt.Fprintf(&b, "\n%s\n", current)
		}
		fmt.Fprintf(&b, "%3d. %s\n", e.Position, e.Name)
	}
	return b.String()
}

// FileName returns a timestamped export file name for the frame.
func FileName(frameID, format string, now time.Time) string {
	return fmt.Sprintf("cardtray-%s-%s.%s", frameID, now.Format("20060102-150405"), format)
}

// Write saves the selection to dir in the given format and returns the path.
func Write(sel Selection, dir, format string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", pErrors.E(pErrors.Op("export.Write"), pErrors.KindIO, dir, err)
	}
	path := filepath.Join(dir, FileName(sel.Frame, format, now))

	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = JSON(sel)
	case FormatYAML:
		data, err = YAML(sel)
	case FormatXLSX:
		return path, WriteXLSX(path, sel)
	default:
		return "", pErrors.E(pErrors.Op("export.Write"), pErrors.KindInvalid, fmt.Sprintf("unknown format %q", format))
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", pErrors.E(pErrors.Op("export.Write"), pErrors.KindIO, path, err)
	}
	return path, nil
}

var xlsxHeader = []interface{}{"tray", "position", "name", "image", "link"}

// WriteXLSX writes one row per entry with a summary row on top.
func WriteXLSX(path string, sel Selection) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return pErrors.E(pErrors.Op("export.WriteXLSX"), pErrors.KindIO, path, err)
	}

	summary := []interface{}{sel.Frame, sel.Count, sel.Capacity, sel.Percentage, sel.ExportedAt}
	if err := sw.SetRow("A1", summary); err != nil {
		return pErrors.E(pErrors.Op("export.WriteXLSX"), pErrors.KindIO, path, err)
	}
	if err := sw.SetRow("A2", xlsxHeader); err != nil {
		return pErrors.E(pErrors.Op("export.WriteXLSX"), pErrors.KindIO, path, err)
	}
	for i, e := range sel.Entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		row := []interface{}{e.Tray, e.Position, e.Name, e.Image, e.Link}
		if err := sw.SetRow(cell, row); err != nil {
			return pErrors.E(pErrors.Op("export.WriteXLSX"), pErrors.KindIO, path, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return pErrors.E(pErrors.Op("export.WriteXLSX"), pErrors.KindIO, path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return pErrors.E(pErrors.Op("export.WriteXLSX"), pErrors.KindIO, path, err)
	}
	return nil
}
