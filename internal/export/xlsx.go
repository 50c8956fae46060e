package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"grantflow/internal/domain"
)

// FundingSourcesXLSX renders funding sources as an XLSX workbook and
// returns its bytes.
func FundingSourcesXLSX(sources []domain.FundingSource) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Funding Sources"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("export.FundingSourcesXLSX: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Name", "Email", "Phone", "Address", "Award Amount", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, fs := range sources {
		values := []any{fs.Name, fs.Email, fs.Phone, fs.Address, fs.AwardAmount, fs.CreatedAt.Format("2006-01-02")}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export.FundingSourcesXLSX: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
