package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/zhubert/cardtray/internal/catalog"
	pErrors "github.com/zhubert/cardtray/internal/errors"
)

var catalogHeader = []interface{}{"name", "image", "link", "local_image"}

// WriteCatalogXLSX writes updater records as a spreadsheet.
func WriteCatalogXLSX(path string, records []catalog.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return pErrors.E(pErrors.Op("export.WriteCatalogXLSX"), pErrors.KindIO, path, err)
	}
	if err := sw.SetRow("A1", catalogHeader); err != nil {
		return pErrors.E(pErrors.Op("export.WriteCatalogXLSX"), pErrors.KindIO, path, err)
	}
	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{r.Name, r.Image, r.Link, r.LocalImage}); err != nil {
			return pErrors.E(pErrors.Op("export.WriteCatalogXLSX"), pErrors.KindIO, path, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return pErrors.E(pErrors.Op("export.WriteCatalogXLSX"), pErrors.KindIO, path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return pErrors.E(pErrors.Op("export.WriteCatalogXLSX"), pErrors.KindIO, path, err)
	}
	return nil
}
