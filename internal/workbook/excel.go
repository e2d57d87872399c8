package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"
)

// ErrSheetNotFound is returned when a workbook lacks a sheet the layout expects
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is an opened report file
type Workbook struct {
	path       string
	file       *excelize.File
	date1904   bool
	dateStyles map[int]bool
}

// Open opens an .xlsx report
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	wb := &Workbook{
		path:       path,
		file:       f,
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb, nil
}

// Path returns the file the workbook was opened from
func (w *Workbook) Path() string { return w.path }

// SheetNames lists the sheets in workbook order
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Sheet loads a sheet into memory.
// Names match exactly first, then ignoring character width and spaces.
func (w *Workbook) Sheet(name string) (*Grid, error) {
	actual, ok := w.resolveSheet(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, name, w.path)
	}

	rows, err := w.file.GetRows(actual, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", actual, err)
	}

	grid := NewGrid(actual)
	grid.grow(len(rows))
	for r, row := range rows {
		for c, raw := range row {
			if raw == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("invalid cell at row %d col %d: %w", r+1, c+1, err)
			}
			grid.Set(r+1, c+1, w.cellValue(actual, ref, raw))
		}
	}
	return grid, nil
}

func (w *Workbook) resolveSheet(name string) (string, bool) {
	sheets := w.file.GetSheetList()
	for _, s := range sheets {
		if s == name {
			return s, true
		}
	}
	key := foldSheetName(name)
	for _, s := range sheets {
		if foldSheetName(s) == key {
			return s, true
		}
	}
	return "", false
}

func foldSheetName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, width.Fold.String(name))
}

func (w *Workbook) cellValue(sheet, ref, raw string) Value {
	cellType, err := w.file.GetCellType(sheet, ref)
	if err != nil {
		return Text(raw)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return Text(raw)
	case excelize.CellTypeBool:
		return Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return Date(t)
		}
		return Text(raw)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Text(raw)
	}
	if w.isDateStyled(sheet, ref) {
		if t, err := excelize.ExcelDateToTime(f, w.date1904); err == nil {
			return Date(t)
		}
	}
	return Number(f)
}

func (w *Workbook) isDateStyled(sheet, ref string) bool {
	styleID, err := w.file.GetCellStyle(sheet, ref)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := w.dateStyles[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := w.file.GetStyle(styleID); err == nil {
		isDate = isDateNumFmt(style.NumFmt, style.CustomNumFmt)
	}
	w.dateStyles[styleID] = isDate
	return isDate
}

// isDateNumFmt reports whether a number format renders a calendar date
func isDateNumFmt(id int, custom *string) bool {
	if custom != nil {
		return customFormatHasDate(*custom)
	}
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 31, id >= 34 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

func customFormatHasDate(format string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range format {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	plain := b.String()
	return strings.ContainsAny(plain, "yd")
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODate(raw string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
