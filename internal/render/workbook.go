package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

// StatusSheet is the sheet name of the status export.
const StatusSheet = "Status Ikan"

var statusHeader = []any{
	"Tahun", "Kelompok Ikan", "Provinsi", "Effort (kapal)", "CPUE (Ton/Trip)",
	"Hasil Tangkapan / Catch (Ton)", "TP_C", "TP_E", "MSY", "TP", "Status",
}

// StatusWorkbook writes the status table as an XLSX workbook. Missing cells
// are left blank.
func StatusWorkbook(w io.Writer, rows []domain.StatusRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StatusSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(StatusSheet, "A1", &statusHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetPanes(StatusSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.Year, r.SpeciesGroup, r.Province,
			r.Effort, r.CPUE, r.CatchTons, r.TPC, r.TPE, r.MSY, r.TP,
			r.Status,
		}
		if err := f.SetSheetRow(StatusSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
