package document

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// Cell is a single cell of a detected table. Indexes are 1-based as
// returned by the service.
type Cell struct {
	ID          string
	RowIndex    int32
	ColumnIndex int32
	RowSpan     int32
	ColumnSpan  int32
	Text        string
	Confidence  float32
	Geometry    Geometry
	Words       []Word
	Selections  []SelectionElement
}

func newCell(b types.Block, blocks blockMap) Cell {
	cell := Cell{
		ID:          aws.ToString(b.Id),
		RowIndex:    aws.ToInt32(b.RowIndex),
		ColumnIndex: aws.ToInt32(b.ColumnIndex),
		RowSpan:     aws.ToInt32(b.RowSpan),
		ColumnSpan:  aws.ToInt32(b.ColumnSpan),
		Confidence:  aws.ToFloat32(b.Confidence),
		Geometry:    newGeometry(b.Geometry),
	}
	var parts []string
	for _, child := range blocks.children(b) {
		switch child.BlockType {
		case types.BlockTypeWord:
			w := newWord(child)
			cell.Words = append(cell.Words, w)
			parts = append(parts, w.Text)
		case types.BlockTypeSelectionElement:
			se := newSelectionElement(child)
			cell.Selections = append(cell.Selections, se)
			parts = append(parts, string(se.Status))
		}
	}
	cell.Text = strings.Join(parts, " ")
	return cell
}

// Row is a horizontal run of cells sharing a row index.
type Row struct {
	Cells []Cell
}

// Table is a table detected by the TABLES feature. Cells are grouped
// into rows by their 1-based row index.
type Table struct {
	ID         string
	Confidence float32
	Geometry   Geometry
	Rows       []Row
}

func newTable(b types.Block, blocks blockMap) Table {
	table := Table{
		ID:         aws.ToString(b.Id),
		Confidence: aws.ToFloat32(b.Confidence),
		Geometry:   newGeometry(b.Geometry),
	}

	currentRow := int32(0)
	for _, child := range blocks.children(b) {
		if child.BlockType != types.BlockTypeCell {
			continue
		}
		cell := newCell(child, blocks)
		if cell.RowIndex != currentRow {
			table.Rows = append(table.Rows, Row{})
			currentRow = cell.RowIndex
		}
		last := &table.Rows[len(table.Rows)-1]
		last.Cells = append(last.Cells, cell)
	}
	return table
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the widest row's cell count.
func (t *Table) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row.Cells) > max {
			max = len(row.Cells)
		}
	}
	return max
}

// Text renders the table as tab-separated rows.
func (t *Table) Text() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for i, cell := range row.Cells {
			if i > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(cell.Text)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
