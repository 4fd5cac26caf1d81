package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
	// Widths optionally sets column widths, first column first.
	Widths []float64
}

// ExportXLSX writes sheets to outDir/<date>_<name>.xlsx and returns the path.
func ExportXLSX(outDir, name string, sheets []Sheet) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("export %s: no sheets", name)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	fileBase := fmt.Sprintf("%s_%s.xlsx", time.Now().Format("20060102"), sanitizeFilenamePart(name))
	outPath := filepath.Join(outDir, fileBase)
	if err := WriteXLSX(outPath, sheets); err != nil {
		return "", err
	}
	return outPath, nil
}

// WriteXLSX writes sheets to path.
func WriteXLSX(path string, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return err
		}
		if err := writeSheet(f, sh, headerStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", sh.Name, err)
		}
	}
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sh Sheet, headerStyle int) error {
	if len(sh.Headers) > 0 {
		if err := f.SetSheetRow(sh.Name, "A1", &sh.Headers); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(sh.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sh.Name, "A1", last, headerStyle); err != nil {
			return err
		}
	}
	for r, row := range sh.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sh.Name, cell, &values); err != nil {
			return err
		}
	}
	for c, width := range sh.Widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.Name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func sanitizeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "_"
	}
	// Windows forbidden: <>:"/\\|?*
	repl := strings.NewReplacer(
		"<", "_",
		">", "_",
		":", "_",
		"\"", "_",
		"/", "_",
		"\\", "_",
		"|", "_",
		"?", "_",
		"*", "_",
		" ", "_",
	)
	return repl.Replace(s)
}
