package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dslipak/pdf"
)

const (
	// Horizontal gap, in points, between text runs that starts a new word.
	wordGap = 1.5
	// Horizontal gap that starts a new table cell.
	cellGap = 12.0
	// Runs whose baselines differ by less than this share a line.
	lineTolerance = 2.0
)

type pdfDocument struct {
	reader *pdf.Reader
}

// OpenPDF reads the whole file into memory and opens it, decrypting with
// password when it is non-empty.
func OpenPDF(path, password string) (Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrDocumentUnreadable)
	}

	reader, err := newReader(data, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrDocumentUnreadable)
	}
	return &pdfDocument{reader: reader}, nil
}

func newReader(data []byte, password string) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	// The reader keeps asking for passwords until it gets "", so offer ours once.
	offered := false
	passwords := func() string {
		if offered {
			return ""
		}
		offered = true
		return password
	}
	return pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), passwords)
}

func (d *pdfDocument) NumPages() int {
	return d.reader.NumPage()
}

func (d *pdfDocument) Page(i int) (page Page, err error) {
	if i < 0 || i >= d.reader.NumPage() {
		return nil, fmt.Errorf("page %d of %d: %w", i, d.reader.NumPage(), ErrPageOutOfRange)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v: %w", i+1, r, ErrDocumentUnreadable)
		}
	}()

	p := d.reader.Page(i + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: %w", i+1, ErrDocumentUnreadable)
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("page %d: %v: %w", i+1, err, ErrDocumentUnreadable)
	}

	var texts []pdf.Text
	for _, row := range rows {
		texts = append(texts, row.Content...)
	}
	lines := layoutLines(texts)
	return &pdfPage{number: i + 1, text: joinLines(lines), tables: groupTables(lines)}, nil
}

type pdfPage struct {
	number int
	text   string
	tables []Table
}

func (p *pdfPage) Number() int     { return p.number }
func (p *pdfPage) Text() string    { return p.text }
func (p *pdfPage) Tables() []Table { return p.tables }

// layoutLines groups text runs into visual lines, top of the page first, and
// splits each line into cells at wide horizontal gaps.
func layoutLines(texts []pdf.Text) [][]string {
	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S != "" {
			runs = append(runs, t)
		}
	}
	sort.SliceStable(runs, func(a, b int) bool {
		if math.Abs(runs[a].Y-runs[b].Y) >= lineTolerance {
			return runs[a].Y > runs[b].Y
		}
		return runs[a].X < runs[b].X
	})

	var lines [][]string
	var cells []string
	var cell strings.Builder
	var lineY, lastEnd float64

	flushCell := func() {
		if text := strings.TrimSpace(cell.String()); text != "" {
			cells = append(cells, text)
		}
		cell.Reset()
	}
	flushLine := func() {
		flushCell()
		if len(cells) > 0 {
			lines = append(lines, cells)
		}
		cells = nil
	}

	for i, run := range runs {
		switch {
		case i == 0:
			lineY = run.Y
		case math.Abs(run.Y-lineY) >= lineTolerance:
			flushLine()
			lineY = run.Y
		default:
			gap := run.X - lastEnd
			if gap > cellGap {
				flushCell()
			} else if gap > wordGap {
				cell.WriteByte(' ')
			}
		}
		cell.WriteString(run.S)
		lastEnd = run.X + run.W
	}
	flushLine()
	return lines
}

func joinLines(lines [][]string) string {
	text := make([]string, len(lines))
	for i, cells := range lines {
		text[i] = strings.Join(cells, " ")
	}
	return strings.Join(text, "\n")
}

// groupTables turns runs of two or more consecutive multi-cell lines into
// tables.
func groupTables(lines [][]string) []Table {
	var tables []Table
	var current Table
	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, current)
		}
		current = nil
	}
	for _, cells := range lines {
		if len(cells) < 2 {
			flush()
			continue
		}
		current = append(current, Cells(cells...))
	}
	flush()
	return tables
}
