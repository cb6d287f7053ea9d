package document

import (
	"fmt"
	"strings"
)

// MemoryPage is the content of one in-memory page.
type MemoryPage struct {
	Text   string
	Tables []Table
}

type memoryPage struct {
	number int
	page   MemoryPage
}

func (p memoryPage) Number() int     { return p.number }
func (p memoryPage) Text() string    { return p.page.Text }
func (p memoryPage) Tables() []Table { return p.page.Tables }

// MemoryDocument serves pages held in memory. Used for fixtures and for
// sources that are already tabular.
type MemoryDocument struct {
	pages []MemoryPage
}

func NewMemoryDocument(pages ...MemoryPage) *MemoryDocument {
	return &MemoryDocument{pages: pages}
}

func (d *MemoryDocument) NumPages() int {
	return len(d.pages)
}

func (d *MemoryDocument) Page(i int) (Page, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("page %d of %d: %w", i, len(d.pages), ErrPageOutOfRange)
	}
	return memoryPage{number: i + 1, page: d.pages[i]}, nil
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}
