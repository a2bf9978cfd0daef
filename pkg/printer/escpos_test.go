package printer

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(32)
	assert.Equal(t, []byte{ESC, '@'}, doc.Bytes())
}

func TestKeyValuePadsToWidth(t *testing.T) {
	doc := NewDocument(20)
	doc.Reset()
	out := doc.KeyValue("Total", "56.000").Bytes()

	line := strings.TrimSuffix(string(out[2:]), "\n")
	assert.Len(t, line, 20)
	assert.True(t, strings.HasPrefix(line, "Total"))
	assert.True(t, strings.HasSuffix(line, "56.000"))
}

func TestItemLineTruncatesLongNames(t *testing.T) {
	doc := NewDocument(10)
	out := doc.ItemLine("Kopi Susu Gula Aren", "2", "PCS", "18.000", "36.000").Bytes()

	assert.True(t, bytes.Contains(out, []byte("Kopi Susu \n")))
	assert.True(t, bytes.Contains(out, []byte("36.000")))
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	assert.NoError(t, err)
	assert.False(t, p.IsConnected())

	_, err = NewPrinterFromConfig("usb", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("bluetooth", "", "")
	assert.Error(t, err)
}

func TestSpoolPrinterAppendsJobs(t *testing.T) {
	path := t.TempDir() + "/receipts.bin"
	p, err := NewPrinterFromConfig("spool", path, "")
	assert.NoError(t, err)
	assert.Equal(t, "spool", p.Kind())

	assert.NoError(t, p.Print([]byte("one")))
	assert.NoError(t, p.Print([]byte("two")))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "onetwo", string(data))
}

func TestKeyValueKeepsAmount(t *testing.T) {
	doc := NewDocument(12)
	doc.Reset()
	out := doc.KeyValue("Tukar Poin (100)", "-100").Bytes()

	line := strings.TrimSuffix(string(out[2:]), "\n")
	assert.Equal(t, "Tukar P -100", line)
}

func TestBarcode(t *testing.T) {
	out := NewDocument(32).Barcode("inv-20240501-0001").Bytes()
	assert.True(t, bytes.Contains(out, append([]byte{GS, 'k', 4}, []byte("INV-20240501-0001\x00")...)))

	empty := NewDocument(32).Barcode("@@").Bytes()
	assert.Equal(t, []byte{ESC, '@'}, empty)
}

func TestDrawerPulse(t *testing.T) {
	assert.Equal(t, []byte{ESC, 'p', 0, 25, 250}, DrawerPulse())
}
