package render

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/frame"
)

// pageStyle only lays out the grid and bar; it carries no theme.
const pageStyle = `.cores{display:grid;grid-template-columns:repeat(auto-fill,minmax(320px,1fr));gap:12px}` +
	`.core-header{display:flex;justify-content:space-between}` +
	`.bar{height:6px;background:#2A2A4A}.bar-fill{height:100%}`

// Page wraps a rendered grid in a complete HTML document. A positive refresh
// adds a meta refresh so a browser viewing the file follows updates.
func Page(body *Node, title string, refresh time.Duration) *Node {
	head := El("head", nil,
		El("meta", []Attr{A("charset", "utf-8")}),
	)
	if refresh > 0 {
		secs := strconv.FormatFloat(refresh.Seconds(), 'f', -1, 64)
		head.Children = append(head.Children,
			El("meta", []Attr{A("http-equiv", "refresh"), A("content", secs)}))
	}
	head.Children = append(head.Children,
		TextEl("title", nil, title),
		TextEl("style", nil, pageStyle),
	)
	return El("html", []Attr{A("lang", "en")}, head, El("body", nil, body))
}

// Document is the HTML display surface. Each Apply replaces the whole file.
type Document struct {
	mu      sync.Mutex
	path    string
	title   string
	opts    Options
	refresh time.Duration
}

// NewDocument creates a surface that writes to path.
func NewDocument(path string, opts Options, refresh time.Duration) *Document {
	return &Document{
		path:    path,
		title:   "corewatch",
		opts:    opts,
		refresh: refresh,
	}
}

// Path returns the file the document is written to.
func (d *Document) Path() string {
	return d.path
}

// Apply renders the frame and atomically replaces the document.
func (d *Document) Apply(f frame.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.replace(Render(f, d.opts))
}

// Reset replaces the document with an empty grid.
func (d *Document) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.replace(Render(nil, d.opts))
}

// Write renders the frame as a full page to w.
func (d *Document) Write(w io.Writer, f frame.Frame) error {
	page, err := d.page(Render(f, d.opts))
	if err != nil {
		return err
	}
	if _, err := w.Write(page); err != nil {
		return errors.WrapWithCode(err, errors.ErrOutput, "Cannot write page", "")
	}
	return nil
}

// page serialises grid into a complete document. Failures are RENDER errors.
func (d *Document) page(grid *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, Page(grid, d.title, d.refresh)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) replace(grid *Node) error {
	page, err := d.page(grid)
	if err != nil {
		return err
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".corewatch-*.html")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Cannot create temporary file in "+dir,
			"Check that the directory exists and is writable")
	}
	tmpName := tmp.Name()
	// CreateTemp uses 0600; the page is meant to be opened by a browser.
	_ = tmp.Chmod(0o644)

	if _, err := tmp.Write(page); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrOutput, "Cannot write "+d.path, "")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrOutput, "Cannot write "+d.path, "")
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Cannot replace "+d.path,
			"Check file permissions")
	}
	return nil
}
