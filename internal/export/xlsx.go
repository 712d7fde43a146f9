package export

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the products.
const SheetName = "Products"

// WriteXLSX writes every product to a single-sheet workbook.
func WriteXLSX(w io.Writer, cat *core.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	cols := header()
	if err := sw.SetColWidth(1, len(cols), 20); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	head := make([]interface{}, len(cols))
	for i, c := range cols {
		head[i] = excelize.Cell{StyleID: bold, Value: c}
	}
	if err := sw.SetRow("A1", head); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, p := range ordered(cat) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := record(p)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush xlsx: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
