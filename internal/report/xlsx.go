package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", " ", `\`, " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// sheetName maps a section title to a valid worksheet name.
func sheetName(title string) string {
	name := sheetNameReplacer.Replace(title)
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// writeWorkbook saves one worksheet per section with a header row followed
// by the raw query values.
func writeWorkbook(path string, sections []SectionResult) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close workbook: %w", ErrRender, cerr)
		}
	}()

	const defaultSheet = "Sheet1"
	for i, sec := range sections {
		name := sheetName(sec.Title)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("%w: sheet %q: %w", ErrRender, name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("%w: sheet %q: %w", ErrRender, name, err)
		}

		header := make([]any, len(sec.Table.Columns))
		for j, c := range sec.Table.Columns {
			header[j] = c
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return fmt.Errorf("%w: sheet %q header: %w", ErrRender, name, err)
		}

		for j, row := range sec.Table.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return fmt.Errorf("%w: sheet %q: %w", ErrRender, name, err)
			}
			values := row.Values()
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return fmt.Errorf("%w: sheet %q row %d: %w", ErrRender, name, j+1, err)
			}
		}
	}

	if len(sections) > 0 {
		f.SetActiveSheet(0)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrRender, path, err)
	}
	return nil
}
