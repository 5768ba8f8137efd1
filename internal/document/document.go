// Package document shapes the flat block list returned by Textract into
// a navigable object model: a Document of Pages, each holding its text
// lines, tables and form fields. Blocks reference each other by ID
// through typed relationships; the model resolves those references once
// at construction time.
package document

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// Word is a single detected word.
type Word struct {
	ID         string
	Text       string
	Confidence float32
	Geometry   Geometry
}

func newWord(b types.Block) Word {
	return Word{
		ID:         aws.ToString(b.Id),
		Text:       aws.ToString(b.Text),
		Confidence: aws.ToFloat32(b.Confidence),
		Geometry:   newGeometry(b.Geometry),
	}
}

// Line is a contiguous run of words detected on a page.
type Line struct {
	ID         string
	Text       string
	Confidence float32
	Geometry   Geometry
	Words      []Word
}

func newLine(b types.Block, blocks blockMap) Line {
	line := Line{
		ID:         aws.ToString(b.Id),
		Text:       aws.ToString(b.Text),
		Confidence: aws.ToFloat32(b.Confidence),
		Geometry:   newGeometry(b.Geometry),
	}
	for _, child := range blocks.children(b) {
		if child.BlockType == types.BlockTypeWord {
			line.Words = append(line.Words, newWord(child))
		}
	}
	return line
}

// SelectionElement is a check box or radio button detected on a page.
type SelectionElement struct {
	ID         string
	Status     types.SelectionStatus
	Confidence float32
	Geometry   Geometry
}

func newSelectionElement(b types.Block) SelectionElement {
	return SelectionElement{
		ID:         aws.ToString(b.Id),
		Status:     b.SelectionStatus,
		Confidence: aws.ToFloat32(b.Confidence),
		Geometry:   newGeometry(b.Geometry),
	}
}

// Page holds everything detected on a single document page.
type Page struct {
	ID       string
	Geometry Geometry
	Lines    []Line
	Tables   []Table
	Form     Form
}

// Text returns the page's lines joined by newlines.
func (p *Page) Text() string {
	var sb strings.Builder
	for _, line := range p.Lines {
		sb.WriteString(line.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Document is the parsed result of a Textract operation.
type Document struct {
	Pages []*Page

	blocks blockMap
}

// New builds a Document from the aggregated block list of one or more
// Textract responses. Blocks arrive grouped by page, each page headed
// by a PAGE block.
func New(blocks []types.Block) *Document {
	doc := &Document{blocks: make(blockMap, len(blocks))}
	for _, b := range blocks {
		if b.Id != nil {
			doc.blocks[*b.Id] = b
		}
	}

	var page *Page
	for _, b := range blocks {
		if b.BlockType == types.BlockTypePage {
			page = &Page{
				ID:       aws.ToString(b.Id),
				Geometry: newGeometry(b.Geometry),
				Form:     newForm(),
			}
			doc.Pages = append(doc.Pages, page)
			continue
		}
		if page == nil {
			// Tolerate responses that omit the leading PAGE block.
			page = &Page{Form: newForm()}
			doc.Pages = append(doc.Pages, page)
		}

		switch b.BlockType {
		case types.BlockTypeLine:
			page.Lines = append(page.Lines, newLine(b, doc.blocks))
		case types.BlockTypeTable:
			page.Tables = append(page.Tables, newTable(b, doc.blocks))
		case types.BlockTypeKeyValueSet:
			if hasEntityType(b, types.EntityTypeKey) {
				if f := newField(b, doc.blocks); f.Key != nil {
					page.Form.addField(f)
				}
			}
		}
	}
	return doc
}

// Text returns the rendered text of every page.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		sb.WriteString(p.Text())
	}
	return sb.String()
}

// Block returns the raw block with the given ID, if present.
func (d *Document) Block(id string) (types.Block, bool) {
	b, ok := d.blocks[id]
	return b, ok
}

// blockMap indexes blocks by ID for relationship resolution.
type blockMap map[string]types.Block

// children returns the resolved CHILD blocks of b, in relationship order.
func (m blockMap) children(b types.Block) []types.Block {
	return m.related(b, types.RelationshipTypeChild)
}

func (m blockMap) related(b types.Block, rel types.RelationshipType) []types.Block {
	var out []types.Block
	for _, r := range b.Relationships {
		if r.Type != rel {
			continue
		}
		for _, id := range r.Ids {
			if child, ok := m[id]; ok {
				out = append(out, child)
			}
		}
	}
	return out
}

func hasEntityType(b types.Block, et types.EntityType) bool {
	for _, t := range b.EntityTypes {
		if t == et {
			return true
		}
	}
	return false
}
