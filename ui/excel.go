package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"powercalc/domain/power"
	"powercalc/models"
)

// handleExport renders a power curve as a downloadable xlsx workbook so the
// tradeoff can be taken into protocol documents.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	var dto models.CurveRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		a.writeError(w, r, power.NewContractError("malformed JSON body"))
		return
	}

	points, err := a.solveCurve(r, dto)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Power Curve"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Test")
	f.SetCellValue(sheet, "B1", dto.Test)
	f.SetCellValue(sheet, "A2", "Alpha")
	f.SetCellValue(sheet, "B2", dto.Alpha)

	f.SetCellValue(sheet, "A4", "Sample Size")
	f.SetCellValue(sheet, "B4", "Power")
	for i, p := range points {
		row := 5 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.SampleSize)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Power)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="power_curve.xlsx"`)
	if err := f.Write(w); err != nil {
		a.log.Error("xlsx export failed: %v", err)
	}
}
