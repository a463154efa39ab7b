package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(32)
	data := doc.Bytes()

	assert.Equal(t, []byte{ESC, '@'}, data[:2])
}

func TestKeyValueFillsWidth(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("Total:", "30.00")

	line := strings.TrimSuffix(string(doc.Bytes()[2:]), "\n")
	assert.Len(t, line, 20)
	assert.True(t, strings.HasPrefix(line, "Total:"))
	assert.True(t, strings.HasSuffix(line, "30.00"))
}

func TestItemLine(t *testing.T) {
	doc := NewDocument(24)
	doc.ItemLine(3, "Pen", "30.00")

	line := strings.TrimSuffix(string(doc.Bytes()[2:]), "\n")
	assert.Len(t, line, 24)
	assert.True(t, strings.HasPrefix(line, "3x Pen"))
	assert.True(t, strings.HasSuffix(line, "30.00"))
}

func TestSeparator(t *testing.T) {
	doc := NewDocument(10)
	doc.Separator('-')

	assert.Contains(t, string(doc.Bytes()), strings.Repeat("-", 10))
}

func TestPartialCut(t *testing.T) {
	doc := NewDocument(32)
	doc.PartialCut()

	data := doc.Bytes()
	assert.Equal(t, []byte{GS, 'V', 0x01}, data[len(data)-3:])
}
