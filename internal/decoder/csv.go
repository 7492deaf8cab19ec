package decoder

import (
	"bytes"
	"encoding/csv"

	"rostercli/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeCSV reads CSV bytes into rows. A UTF-8 BOM (common in sheets exported
// from Excel) is stripped before parsing. Ragged rows are allowed; cell
// values are not trimmed.
func decodeCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV", err)
	}
	return rows, nil
}
