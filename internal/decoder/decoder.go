// Package decoder turns uploaded spreadsheet bytes into raw rows for the
// normalization pipeline. Row 0 is the header row; cell values are preserved
// verbatim, with no trimming beyond what the file format itself implies.
package decoder

import (
	"fmt"
	"log/slog"
	"strings"

	"rostercli/internal/errors"
)

// Decode parses raw file bytes into ordered rows of cell values. ext is the
// declared file extension (with or without the leading dot, any case).
// Unsupported extensions are a user-visible validation error; corrupt files
// surface as parsing errors. The normalizer is never invoked in either case.
func Decode(data []byte, ext string) ([][]string, error) {
	switch normalizeExt(ext) {
	case "xlsx", "xls":
		return decodeExcel(data)
	case "csv":
		return decodeCSV(data)
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported file type: %q (expected xlsx, xls or csv)", ext))
	}
}

// DecodeFile is a convenience wrapper that infers the extension from a file
// name.
func DecodeFile(name string, data []byte) ([][]string, error) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return nil, errors.NewValidationError(fmt.Sprintf("file %q has no extension", name))
	}
	rows, err := Decode(data, name[idx+1:])
	if err != nil {
		return nil, err
	}
	slog.Debug("decoded spreadsheet",
		slog.String("file", name),
		slog.Int("rows", len(rows)))
	return rows, nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
