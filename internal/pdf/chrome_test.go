package pdf

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.InDelta(t, 8.27, opts.PaperWidth, 0.001)
	assert.InDelta(t, 11.69, opts.PaperHeight, 0.001)
	assert.True(t, opts.PrintBackground)
	assert.Empty(t, opts.ExecPath)
}

func TestAllocatorOptions_ExecPath(t *testing.T) {
	base := NewChromeConverter(DefaultOptions()).allocatorOptions()

	opts := DefaultOptions()
	opts.ExecPath = "/usr/bin/chromium"
	withPath := NewChromeConverter(opts).allocatorOptions()

	assert.Len(t, withPath, len(base)+1)
}

func TestPrintParams(t *testing.T) {
	opts := Options{PaperWidth: 8.5, PaperHeight: 11, Margin: 0.5, PrintBackground: false}
	params := NewChromeConverter(opts).printParams()

	assert.InDelta(t, 8.5, params.PaperWidth, 0.001)
	assert.InDelta(t, 11, params.PaperHeight, 0.001)
	assert.InDelta(t, 0.5, params.MarginTop, 0.001)
	assert.InDelta(t, 0.5, params.MarginRight, 0.001)
	assert.False(t, params.PrintBackground)
	assert.True(t, params.PreferCSSPageSize)
}

func TestConvert_WithChrome(t *testing.T) {
	if os.Getenv("HASLETT_CHROME_TESTS") != "1" {
		t.Skip("Skipping Chrome test; set HASLETT_CHROME_TESTS=1 to run")
	}

	out, err := NewChromeConverter(DefaultOptions()).Convert(context.Background(), "<html><body><h1>Jane Doe</h1></body></html>")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
