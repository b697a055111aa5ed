package ledger

import (
	"bytes"
	"fmt"

	"merchstock-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Transactions"

var exportHeader = []string{
	"ID", "Date", "Entity Type", "Entity ID", "Product ID", "Direction",
	"Quantity", "Stock Before", "Stock After", "Reason", "Note", "By",
}

// exportWorkbook renders ledger rows into a single-sheet workbook, newest
// first like the list endpoint.
func exportWorkbook(records []models.StockTransaction) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), exportSheet)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, r := range records {
		productID := ""
		if r.ProductID != nil {
			productID = fmt.Sprint(*r.ProductID)
		}
		reason := ""
		if r.Reason != nil {
			reason = r.Reason.ReasonName
		}

		values := []interface{}{
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			string(r.EntityType),
			r.EntityID,
			productID,
			string(r.Direction),
			r.Quantity,
			r.StockBefore,
			r.StockAfter,
			reason,
			r.Note,
			r.CreatedByName,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}
