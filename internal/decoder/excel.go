package decoder

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"rostercli/internal/errors"
)

// decodeExcel reads the first sheet of a workbook into rows. The first sheet
// mirrors how the source files are authored: one sheet of profiles, headers
// in row 0.
func decodeExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read sheet rows", err)
	}
	return rows, nil
}
