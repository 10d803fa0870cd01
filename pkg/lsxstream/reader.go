package lsxstream

import (
	"bufio"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"

	lsxerrors "github.com/jacoelho/lsx/errors"
)

const readerBufferSize = 256 * 1024

var (
	errNilReader      = errors.New("nil LSX reader")
	errNotOnElement   = errors.New("reader is not positioned on a start element")
	errMissingElement = errors.New("document has no root element")
)

// Reader is a forward-only cursor over the start elements of a document.
//
// After Next reports true the cursor sits on a start element. The caller then either
// calls Next again (descending into the element), Skip (discarding its subtree), or
// Materialize (consuming its subtree into an etree element).
type Reader struct {
	dec     *xml.Decoder
	limits  limits
	cur     xml.StartElement
	depth   int
	open    int
	onStart bool
	done    bool
}

// NewReader creates a reader over r.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	if r == nil {
		return nil, errNilReader
	}
	options := buildOptions(opts...)
	lim, err := resolveLimits(options.maxDepth, options.maxAttrs)
	if err != nil {
		return nil, err
	}
	dec := xml.NewDecoder(bufio.NewReaderSize(r, options.bufferSize))
	dec.Strict = options.strict
	if !options.strict {
		dec.AutoClose = xml.HTMLAutoClose
		dec.Entity = xml.HTMLEntity
	}
	if options.charsetReader != nil {
		dec.CharsetReader = options.charsetReader
	}
	return &Reader{dec: dec, limits: lim}, nil
}

// Next advances to the next start element in document order. It reports false once
// the input is exhausted.
func (r *Reader) Next() (bool, error) {
	if r == nil || r.dec == nil {
		return false, errNilReader
	}
	if r.done {
		return false, nil
	}
	r.onStart = false
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			r.done = true
			return false, nil
		}
		if err != nil {
			return false, r.wrap(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := r.limits.check(t, r.open+1); err != nil {
				return false, r.wrap(err)
			}
			r.cur = t.Copy()
			r.depth = r.open
			r.open++
			r.onStart = true
			return true, nil
		case xml.EndElement:
			r.open--
		}
	}
}

// OnElement reports whether the cursor is positioned on an unconsumed start element.
func (r *Reader) OnElement() bool {
	return r != nil && r.onStart
}

// Name returns the local name of the current element.
func (r *Reader) Name() string {
	if r == nil {
		return ""
	}
	return r.cur.Name.Local
}

// Attr returns the value of the named attribute of the current element.
func (r *Reader) Attr(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, attr := range r.cur.Attr {
		if attr.Name.Local == name && attr.Name.Space == "" {
			return attr.Value, true
		}
	}
	return "", false
}

// Depth returns the nesting depth of the current element; the root is 0.
func (r *Reader) Depth() int {
	if r == nil {
		return 0
	}
	return r.depth
}

// Skip consumes the current element's subtree without building it.
func (r *Reader) Skip() error {
	if !r.OnElement() {
		return errNotOnElement
	}
	r.onStart = false
	if err := r.dec.Skip(); err != nil {
		return r.wrap(err)
	}
	r.open--
	return nil
}

// Materialize consumes the current element's subtree into an etree element.
// Whitespace-only character data is dropped; other text is kept.
func (r *Reader) Materialize() (*etree.Element, error) {
	if !r.OnElement() {
		return nil, errNotOnElement
	}
	r.onStart = false
	root := newElement(r.cur)
	stack := []*etree.Element{root}
	for len(stack) > 0 {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, r.wrap(io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, r.wrap(err)
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			if err := r.limits.check(t, r.open+len(stack)); err != nil {
				return nil, r.wrap(err)
			}
			child := top.CreateElement(t.Name.Local)
			copyAttrs(child, t.Attr)
			stack = append(stack, child)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if !isBlank(t) {
				top.CreateText(string(t))
			}
		}
	}
	r.open--
	return root, nil
}

// InputLine returns the line of the most recently read token.
func (r *Reader) InputLine() int {
	if r == nil || r.dec == nil {
		return 0
	}
	line, _ := r.dec.InputPos()
	return line
}

func (r *Reader) wrap(err error) error {
	var syntaxErr *lsxerrors.SyntaxError
	if errors.As(err, &syntaxErr) {
		return err
	}
	return &lsxerrors.SyntaxError{Line: r.InputLine(), Err: err}
}

func newElement(start xml.StartElement) *etree.Element {
	el := etree.NewElement(start.Name.Local)
	copyAttrs(el, start.Attr)
	return el
}

func copyAttrs(el *etree.Element, attrs []xml.Attr) {
	for _, attr := range attrs {
		key := attr.Name.Local
		if attr.Name.Space == "xmlns" {
			key = "xmlns:" + key
		}
		el.CreateAttr(key, attr.Value)
	}
}

func isBlank(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// LoadDocument reads a whole document into memory.
func LoadDocument(r io.Reader) (*etree.Document, error) {
	if r == nil {
		return nil, errNilReader
	}
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = false
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &lsxerrors.SyntaxError{Err: err}
	}
	if doc.Root() == nil {
		return nil, &lsxerrors.SyntaxError{Err: errMissingElement}
	}
	return doc, nil
}

// LoadString is LoadDocument over an in-memory string.
func LoadString(s string) (*etree.Document, error) {
	return LoadDocument(strings.NewReader(s))
}

// Open opens path and returns a reader over it; the returned closer releases the file.
func Open(path string, opts ...Option) (*Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r, err := NewReader(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return r, f, nil
}
