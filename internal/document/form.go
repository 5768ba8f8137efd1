package document

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// FieldKey is the key side of a detected form field.
type FieldKey struct {
	ID         string
	Text       string
	Confidence float32
	Geometry   Geometry
	Words      []Word
}

// FieldValue is the value side of a detected form field. A value is
// made of words, selection elements, or both.
type FieldValue struct {
	ID         string
	Text       string
	Confidence float32
	Geometry   Geometry
	Words      []Word
	Selections []SelectionElement
}

// Field is a key/value pair detected by the FORMS feature. Value may be
// nil when the service detects a key with no linked value.
type Field struct {
	Key   *FieldKey
	Value *FieldValue
}

func newField(b types.Block, blocks blockMap) Field {
	var f Field

	key := &FieldKey{
		ID:         aws.ToString(b.Id),
		Confidence: aws.ToFloat32(b.Confidence),
		Geometry:   newGeometry(b.Geometry),
	}
	var keyText []string
	for _, child := range blocks.children(b) {
		if child.BlockType == types.BlockTypeWord {
			w := newWord(child)
			key.Words = append(key.Words, w)
			keyText = append(keyText, w.Text)
		}
	}
	if len(key.Words) == 0 {
		// A key with no content cannot be addressed; drop the field.
		return f
	}
	key.Text = strings.Join(keyText, " ")
	f.Key = key

	for _, vb := range blocks.related(b, types.RelationshipTypeValue) {
		if !hasEntityType(vb, types.EntityTypeValue) {
			continue
		}
		f.Value = newFieldValue(vb, blocks)
		break
	}
	return f
}

func newFieldValue(b types.Block, blocks blockMap) *FieldValue {
	value := &FieldValue{
		ID:         aws.ToString(b.Id),
		Confidence: aws.ToFloat32(b.Confidence),
		Geometry:   newGeometry(b.Geometry),
	}
	var parts []string
	for _, child := range blocks.children(b) {
		switch child.BlockType {
		case types.BlockTypeWord:
			w := newWord(child)
			value.Words = append(value.Words, w)
			parts = append(parts, w.Text)
		case types.BlockTypeSelectionElement:
			se := newSelectionElement(child)
			value.Selections = append(value.Selections, se)
			parts = append(parts, string(se.Status))
		}
	}
	value.Text = strings.Join(parts, " ")
	return value
}

// Form is the collection of fields detected on a page.
type Form struct {
	Fields []Field

	byKey map[string]int
}

func newForm() Form {
	return Form{byKey: make(map[string]int)}
}

func (f *Form) addField(field Field) {
	f.Fields = append(f.Fields, field)
	// Duplicate key texts keep the first occurrence.
	if _, ok := f.byKey[field.Key.Text]; !ok {
		f.byKey[field.Key.Text] = len(f.Fields) - 1
	}
}

// FieldByKey returns the first field whose key text matches exactly.
func (f *Form) FieldByKey(key string) (Field, bool) {
	i, ok := f.byKey[key]
	if !ok {
		return Field{}, false
	}
	return f.Fields[i], true
}

// SearchFields returns every field whose key contains the given text,
// case-insensitively.
func (f *Form) SearchFields(key string) []Field {
	needle := strings.ToLower(key)
	var out []Field
	for _, field := range f.Fields {
		if strings.Contains(strings.ToLower(field.Key.Text), needle) {
			out = append(out, field)
		}
	}
	return out
}
