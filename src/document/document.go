// Package document exposes statement files as ordered pages of text and
// tables, independent of the file format they were read from.
package document

import "errors"

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrDocumentUnreadable = errors.New("document unreadable")
	ErrPageOutOfRange     = errors.New("page out of range")
)

// Table is a row-major grid of cells. A nil cell is empty.
type Table [][]*string

// Document is a page-structured source file.
type Document interface {
	NumPages() int
	// Page returns the page at 0-based index i.
	Page(i int) (Page, error)
}

type Page interface {
	// Number is the 1-based page number.
	Number() int
	Text() string
	Tables() []Table
}

// Cell returns the trimmed text of row[col], or "" when the cell is missing.
func Cell(row []*string, col int) string {
	if col < 0 || col >= len(row) || row[col] == nil {
		return ""
	}
	return trimSpace(*row[col])
}

// Cells builds a table row; empty strings become nil cells.
func Cells(values ...string) []*string {
	row := make([]*string, len(values))
	for i := range values {
		if values[i] == "" {
			continue
		}
		value := values[i]
		row[i] = &value
	}
	return row
}
