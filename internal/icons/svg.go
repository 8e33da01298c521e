package icons

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/otherdev/site/internal/domain"
)

// Attr is a single attribute assignment applied to the root element.
type Attr struct {
	Name  string
	Value string
}

// Options controls how Rewrite changes an SVG document.
type Options struct {
	// Size sets width and height on the root element. Zero leaves them alone.
	Size int
	// Set is applied to the root element, adding attributes that are missing.
	Set []Attr
	// Replace is applied to the root element only where the attribute already exists.
	Replace []Attr
}

// Rewrite streams the SVG markup token by token, removing every class attribute
// and applying opts to the first (root) element. Text, comments and processing
// instructions are copied through unchanged.
func Rewrite(markup []byte, opts Options) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(markup))

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	rootSeen := false
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrMalformedSVG, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			t.Name = prefixed(t.Name)
			for i := range t.Attr {
				t.Attr[i].Name = prefixed(t.Attr[i].Name)
			}
			t.Attr = removeAttr(t.Attr, "class")
			if !rootSeen {
				rootSeen = true
				t.Attr = opts.applyRoot(t.Attr)
			}
			tok = t
		case xml.EndElement:
			t.Name = prefixed(t.Name)
			tok = t
		}

		if err := enc.EncodeToken(tok); err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrMalformedSVG, err)
		}
	}

	if !rootSeen {
		return "", fmt.Errorf("%w: no root element", domain.ErrMalformedSVG)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedSVG, err)
	}
	return buf.String(), nil
}

// prefixed folds a raw namespace prefix into the local name. RawToken leaves
// prefixes in Space, which the encoder would treat as a namespace URI.
func prefixed(n xml.Name) xml.Name {
	if n.Space == "" {
		return n
	}
	return xml.Name{Local: n.Space + ":" + n.Local}
}

func (o Options) applyRoot(attrs []xml.Attr) []xml.Attr {
	if o.Size > 0 {
		size := strconv.Itoa(o.Size)
		attrs = setAttr(attrs, "width", size)
		attrs = setAttr(attrs, "height", size)
	}
	for _, a := range o.Set {
		attrs = setAttr(attrs, a.Name, a.Value)
	}
	for _, a := range o.Replace {
		if i := indexAttr(attrs, a.Name); i >= 0 {
			attrs[i].Value = a.Value
		}
	}
	return attrs
}

func indexAttr(attrs []xml.Attr, local string) int {
	for i, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return i
		}
	}
	return -1
}

func setAttr(attrs []xml.Attr, local, value string) []xml.Attr {
	if i := indexAttr(attrs, local); i >= 0 {
		attrs[i].Value = value
		return attrs
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}

func removeAttr(attrs []xml.Attr, local string) []xml.Attr {
	out := attrs[:0]
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			continue
		}
		out = append(out, a)
	}
	return out
}
