package mount

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/view"
)

// defaultPage is used when no host page is configured. The meta refresh
// makes a browser pointed at the output file pick up each write.
const defaultPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="1">
<title>cpubars</title>
</head>
<body>
<div id="app"></div>
</body>
</html>
`

// Page is a parsed host page. Like a browser document it persists across
// renders; each Render re-resolves the target and replaces its content.
// A Page is not safe for concurrent use; the refresh loop is its only writer.
type Page struct {
	doc *html.Node
	id  string
}

// ParsePage parses a host page from r. id names the mount container.
func ParsePage(r io.Reader, id string) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Host page is not valid HTML",
			"Check the file passed with --page")
	}
	if id == "" {
		id = DefaultID
	}
	return &Page{doc: doc, id: id}, nil
}

// DefaultPage returns the built-in host page.
func DefaultPage(id string) *Page {
	p, err := ParsePage(strings.NewReader(defaultPage), id)
	if err != nil {
		// The built-in page is a constant; html.Parse only fails on reader errors.
		panic(err)
	}
	return p
}

// LoadPage reads a host page from path, or returns DefaultPage when path is empty.
func LoadPage(path, id string) (*Page, error) {
	if path == "" {
		return DefaultPage(id), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open host page "+path,
			"Check the path passed with --page")
	}
	defer f.Close()
	return ParsePage(f, id)
}

// Target returns the current mount target.
func (p *Page) Target() *html.Node {
	return Resolve(p.doc, p.id)
}

// Render mounts tree into the page and returns the serialized document.
func (p *Page) Render(tree view.Node) ([]byte, error) {
	Replace(p.Target(), tree)

	var buf bytes.Buffer
	if err := html.Render(&buf, p.doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRender, "Cannot serialize page", "")
	}
	return buf.Bytes(), nil
}

// Output writes rendered pages either to a file (atomically) or a writer.
type Output struct {
	Page *Page
	// Path, when set, is replaced on every render.
	Path string
	// W receives the document when Path is empty.
	W io.Writer
}

// Mount renders tree and publishes the document.
func (o *Output) Mount(tree view.Node) error {
	data, err := o.Page.Render(tree)
	if err != nil {
		return err
	}
	if o.Path == "" {
		if _, err := o.W.Write(data); err != nil {
			return errors.WrapWithCode(err, errors.ErrRender, "Cannot write page", "")
		}
		return nil
	}
	return writeAtomic(o.Path, data)
}

// writeAtomic replaces path so readers never see a half-written page.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cpubars-*.html")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Cannot create temp file in "+dir,
			"Check that the output directory exists and is writable")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrRender, "Cannot write "+tmpName, "")
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrRender, "Cannot chmod "+tmpName, "")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrRender, "Cannot write "+tmpName, "")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrRender, "Cannot replace "+path, "")
	}
	return nil
}
