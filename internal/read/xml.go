package read

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"

	"github.com/zoobzio/sqlkit/internal/types"
)

const formatXML = "XML"

// Decoder is the token source of the XML reader together with the switches
// the hardening options act on.
type Decoder struct {
	*xml.Decoder
	DisallowDoctype bool
}

// Hardening is a named parser setting applied before streaming begins.
type Hardening struct {
	Apply func(*Decoder) error
	Name  string
}

// DefaultHardening rejects document type declarations and resolves no
// entities beyond the five predefined ones.
func DefaultHardening() []Hardening {
	return []Hardening{
		{
			Name: "disallow-doctype-decl",
			Apply: func(d *Decoder) error {
				d.DisallowDoctype = true
				return nil
			},
		},
		{
			Name: "external-entities",
			Apply: func(d *Decoder) error {
				d.Strict = true
				d.Entity = nil
				d.AutoClose = nil
				return nil
			},
		},
	}
}

func harden(d *Decoder, options []Hardening, log *slog.Logger) {
	for _, h := range options {
		if err := h.Apply(d); err != nil {
			log.Warn("xml hardening option not applied", "option", h.Name, "error", err)
		}
	}
}

// ReadXML materializes a result from an XML document of the form
//
//	<result>
//	  <fields><field name="A" type="INTEGER"/></fields>
//	  <records><record><A>1</A></record></records>
//	</result>
//
// Without <fields>, the elements of the first record declare the columns.
// A column of a multiset type may contain a nested <result>.
func ReadXML(r io.Reader, opts Options) (*types.Result, error) {
	log := opts.logger()
	d := &Decoder{Decoder: xml.NewDecoder(r)}
	harden(d, opts.hardening(), log)

	result, err := stream(d, newHandler(opts.builder()))
	if err != nil {
		return nil, boundary(formatXML, err)
	}
	log.Debug("read result", "format", formatXML, "records", result.Len())
	return result, nil
}

// stream pushes the decoder's tokens into h in document order.
func stream(d *Decoder, h *handler) (*types.Result, error) {
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return h.finish()
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			err = h.startElement(t.Name.Local, t.Attr)
		case xml.EndElement:
			err = h.endElement(t.Name.Local)
		case xml.CharData:
			err = h.characters(string(t))
		case xml.Directive:
			if d.DisallowDoctype && bytes.HasPrefix(bytes.TrimSpace(t), []byte("DOCTYPE")) {
				err = structuralf(formatXML, "document type declarations are not allowed")
			}
		}
		if err != nil {
			return nil, err
		}
	}
}
