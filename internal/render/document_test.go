package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/frame"
)

func TestWriteHTML(t *testing.T) {
	n := El("div", []Attr{A("class", "a"), A("title", `x"<y>`)},
		TextEl("span", nil, "5 < 6 & 7"),
		El("meta", []Attr{A("charset", "utf-8")}),
	)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, n))
	assert.Equal(t,
		`<div class="a" title="x&#34;&lt;y&gt;"><span>5 &lt; 6 &amp; 7</span><meta charset="utf-8"></div>`,
		buf.String())
}

func TestWriteHTML_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteHTML_RejectsMalformedTree(t *testing.T) {
	tests := []struct {
		name string
		node *Node
	}{
		{name: "missing tag", node: El("div", nil, El("", nil))},
		{name: "void element with children", node: El("meta", nil, El("span", nil))},
		{name: "void element with text", node: TextEl("br", nil, "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteHTML(&buf, tt.node)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrRender))
			assert.Empty(t, buf.String(), "nothing is written")
		})
	}
}

func TestDocument_RenderErrorKeepsPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpus.html")
	d := NewDocument(path, DefaultOptions(), 0)
	require.NoError(t, d.Apply(frame.Frame{{CoreID: 0, Usage: 12}}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = d.replace(El("div", nil, El("", nil)))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRender))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestDocument_WriteErrorIsOutput(t *testing.T) {
	d := NewDocument("-", DefaultOptions(), 0)
	err := d.Write(failingWriter{}, frame.Frame{{CoreID: 0, Usage: 1}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrOutput))
}

func TestPage_Refresh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, Page(Render(nil, DefaultOptions()), "corewatch", 1500*time.Millisecond)))
	assert.Contains(t, buf.String(), `<meta http-equiv="refresh" content="1.5">`)
	assert.Contains(t, buf.String(), `<title>corewatch</title>`)

	buf.Reset()
	require.NoError(t, WriteHTML(&buf, Page(Render(nil, DefaultOptions()), "corewatch", 0)))
	assert.NotContains(t, buf.String(), "refresh")
}

func TestDocument_ApplyReplacesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cores.html")
	doc := NewDocument(path, DefaultOptions(), time.Second)
	assert.Equal(t, path, doc.Path())

	require.NoError(t, doc.Apply(frame.Frame{
		{CoreID: 0, Usage: 10},
		{CoreID: 1, Usage: 90},
	}))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(first), `data-core-id=`))

	require.NoError(t, doc.Apply(frame.Frame{{CoreID: 5, Usage: 55}}))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(second), `data-core-id=`))
	assert.Contains(t, string(second), `data-core-id="5"`)
	assert.NotContains(t, string(second), `data-core-id="1"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestDocument_ApplyIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cores.html")
	doc := NewDocument(path, DefaultOptions(), 0)
	f := frame.Frame{{CoreID: 0, Usage: 42.5, History: []float64{10, 20, 30}}}

	require.NoError(t, doc.Apply(f))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, doc.Apply(f))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf, f))
	assert.Equal(t, string(first), buf.String())
}

func TestDocument_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cores.html")
	doc := NewDocument(path, DefaultOptions(), 0)

	require.NoError(t, doc.Apply(frame.Frame{{CoreID: 0, Usage: 1}}))
	require.NoError(t, doc.Reset())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<div class="cores"></div>`)
}

func TestDocument_UnwritableDirectory(t *testing.T) {
	doc := NewDocument(filepath.Join(t.TempDir(), "missing", "cores.html"), DefaultOptions(), 0)
	err := doc.Apply(frame.Frame{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrOutput))
}
