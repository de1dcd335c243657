package sqlkit

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zoobzio/sqlkit/internal/read"
	"github.com/zoobzio/sqlkit/internal/types"
)

// ReadOption configures ReadJSON and ReadXML.
type ReadOption func(*read.Options)

// WithSchema fixes the row schema instead of resolving it from the document.
func WithSchema(schema RowSchema) ReadOption {
	return func(o *read.Options) {
		o.Schema = &schema
	}
}

// WithTypeResolver resolves declared type names with r.
func WithTypeResolver(r TypeResolver) ReadOption {
	return func(o *read.Options) {
		o.Resolver = r
	}
}

// WithLogger sets the logger for read diagnostics. The default is
// slog.Default().
func WithLogger(l *slog.Logger) ReadOption {
	return func(o *read.Options) {
		o.Logger = l
	}
}

// WithHardening replaces the XML parser hardening options.
func WithHardening(h ...Hardening) ReadOption {
	return func(o *read.Options) {
		o.Hardening = append([]Hardening{}, h...)
	}
}

func readOptions(opts []ReadOption) read.Options {
	var o read.Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ReadJSON materializes a result from a JSON document:
//
//	{"fields": [{"name": "A", "type": "INTEGER"}], "records": [[1]]}
//
// or a bare array of records. Failures are reported as DataAccessError and
// no partial result is returned.
func ReadJSON(r io.Reader, opts ...ReadOption) (*Result, error) {
	return read.ReadJSON(r, readOptions(opts))
}

// ReadXML materializes a result from an XML document:
//
//	<result><fields><field name="A" type="INTEGER"/></fields>
//	<records><record><A>1</A></record></records></result>
//
// Failures are reported as DataAccessError and no partial result is returned.
func ReadXML(r io.Reader, opts ...ReadOption) (*Result, error) {
	return read.ReadXML(r, readOptions(opts))
}

// ReadString materializes a result from a JSON or XML document, choosing
// the format from the first significant character.
func ReadString(doc string, opts ...ReadOption) (*Result, error) {
	if strings.HasPrefix(strings.TrimSpace(doc), "<") {
		return ReadXML(strings.NewReader(doc), opts...)
	}
	return ReadJSON(strings.NewReader(doc), opts...)
}

// FormatJSON writes res as a JSON document that ReadJSON accepts.
func FormatJSON(w io.Writer, res *Result) error {
	return read.FormatJSON(w, res)
}

// FormatXML writes res as an XML document that ReadXML accepts. NULL and
// the empty string are both written as an empty element and read back as
// NULL; use FormatJSON when the two must stay distinct.
func FormatXML(w io.Writer, res *Result) error {
	return read.FormatXML(w, res)
}

// Format names a serialized result format.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	XML  Format = "xml"
)

var readers = map[Format]read.Reader{
	JSON: read.ReadJSON,
	XML:  read.ReadXML,
}

var writers = map[Format]func(io.Writer, *types.Result) error{
	JSON: read.FormatJSON,
	XML:  read.FormatXML,
}

// Read materializes a result in the named format.
func Read(format Format, r io.Reader, opts ...ReadOption) (*Result, error) {
	reader, ok := readers[format]
	if !ok {
		return nil, fmt.Errorf("unknown result format %q", format)
	}
	return reader(r, readOptions(opts))
}

// Write serializes a result in the named format.
func Write(format Format, w io.Writer, res *Result) error {
	writer, ok := writers[format]
	if !ok {
		return fmt.Errorf("unknown result format %q", format)
	}
	return writer(w, res)
}

// Convert re-serializes a document from one format to another.
func Convert(from, to Format, r io.Reader, opts ...ReadOption) ([]byte, error) {
	res, err := Read(from, r, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Write(to, &buf, res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
