package models

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var plantMasterExportHeaders = []string{
	"JobNumber", "Client", "Source", "Rush",
	"InPlant", "Doors", "CutFinish", "CustomFinish",
	"Drawer", "CutMelamine", "Paint", "Assembly",
	"ShipDate", "ShipStatus", "BoxesAssembled",
}

func exportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// milestone cells show the actual when done, otherwise the scheduled date
func exportMilestone(scheduled *time.Time, actual *time.Time) string {
	if actual != nil {
		return "Done " + actual.Format("2006-01-02")
	}
	return exportDate(scheduled)
}

// ExportPlantMasterExcel renders the filtered plant list as a spreadsheet.
// The same compiled query the list screen uses drives the export, so the
// file matches whatever the user is looking at.
func ExportPlantMasterExcel(ctx context.Context, q *ListQuery) (*excelize.File, error) {
	rows, err := FetchAll[PlantMasterRow](ctx, q)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	for i, header := range plantMasterExportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx, row := range rows {
		values := []any{
			row.JobNumber,
			row.ClientName,
			row.SourceType,
			row.IsRush,
			exportMilestone(row.InPlantDate, row.InPlantActual),
			exportMilestone(row.DoorsDate, row.DoorsActual),
			exportMilestone(row.CutFinishDate, row.CutFinishActual),
			exportMilestone(row.CustomFinishDate, row.CustomFinishActual),
			exportMilestone(row.DrawerDate, row.DrawerActual),
			exportMilestone(row.CutMelamineDate, row.CutMelamineActual),
			exportMilestone(row.PaintDate, row.PaintActual),
			exportMilestone(row.AssemblyDate, row.AssemblyActual),
			exportDate(row.ShipDate),
			string(row.ShipStatus),
			row.BoxAssembledCount,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	if len(rows) > 0 {
		if err := f.AddTable(sheet, &excelize.Table{
			Range: fmt.Sprintf("A1:%s%d",
				mustColumnName(len(plantMasterExportHeaders)), len(rows)+1),
		}); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func mustColumnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
