package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"ticket-analytics/internal/model"
)

const (
	sheetName = "Report"
	headerRow = 4
)

// Column is one exported field. Value renders the cell for row i.
type Column struct {
	Label string
	Width float64
	Value func(i int) interface{}
}

// Sheet is a titled table ready to be written as a workbook.
type Sheet struct {
	Title       string
	GeneratedAt time.Time
	Rows        int
	Columns     []Column
}

func (s Sheet) Write(w io.Writer) error {
	f, err := s.build()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (s Sheet) build() (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetName, "A1", s.Title); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	_ = f.SetRowHeight(sheetName, 1, 30)
	_ = f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", s.GeneratedAt.Format(model.DateTimeLayout)))

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders("000000"),
	})
	if err != nil {
		return nil, err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{Border: borders("CCCCCC")})
	if err != nil {
		return nil, err
	}

	for col, column := range s.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheetName, cell, column.Label)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		width := column.Width
		if width == 0 {
			width = 18
		}
		_ = f.SetColWidth(sheetName, name, name, width)
	}

	for row := 0; row < s.Rows; row++ {
		for col, column := range s.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, headerRow+1+row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, column.Value(row)); err != nil {
				return nil, err
			}
			_ = f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return f, nil
}

func borders(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}
