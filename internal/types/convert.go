package types

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DecimalString is an exact numeric value kept in its decimal text form.
type DecimalString string

// Layouts accepted for temporal text.
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05.999999999"
	TimestampLayout = "2006-01-02 15:04:05.999999999"
)

var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

// Convert turns a raw value from a serialized document into the Go value
// for this type. nil stays nil (SQL NULL). Strings are parsed; binary text
// is base64. Values already of the target Go type pass through.
func (t DataType) Convert(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if t.Kind == KindMultiset {
		if r, ok := raw.(*Result); ok {
			if t.Nested.Schema.Len() > 0 && !t.Nested.Schema.SameShape(r.Schema()) {
				return nil, fmt.Errorf("nested result does not match %s schema", t.Name)
			}
			return r, nil
		}
		return nil, fmt.Errorf("cannot convert %T to %s", raw, t.Name)
	}

	switch v := raw.(type) {
	case string:
		return t.fromString(v)
	case json.Number:
		return t.fromNumber(v)
	case bool:
		switch t.Kind {
		case KindBoolean, KindOther:
			return v, nil
		case KindVarchar, KindChar, KindClob:
			return strconv.FormatBool(v), nil
		}
	case int:
		return t.fromNumber(json.Number(strconv.Itoa(v)))
	case int16:
		return t.fromNumber(json.Number(strconv.FormatInt(int64(v), 10)))
	case int32:
		return t.fromNumber(json.Number(strconv.FormatInt(int64(v), 10)))
	case int64:
		return t.fromNumber(json.Number(strconv.FormatInt(v, 10)))
	case float64:
		return t.fromNumber(json.Number(strconv.FormatFloat(v, 'g', -1, 64)))
	case []byte:
		switch t.Kind {
		case KindBinary, KindOther:
			return append([]byte(nil), v...), nil
		case KindVarchar, KindChar, KindClob:
			return string(v), nil
		}
	case DecimalString:
		if t.Kind == KindDecimal {
			return v, nil
		}
		return t.fromNumber(json.Number(v))
	case time.Time:
		switch t.Kind {
		case KindDate, KindTime, KindTimestamp, KindOther:
			return v, nil
		}
	case uuid.UUID:
		switch t.Kind {
		case KindUUID, KindOther:
			return v, nil
		case KindVarchar, KindChar, KindClob:
			return v.String(), nil
		}
	default:
		if t.Kind == KindOther {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("cannot convert %T to %s", raw, t.Name)
}

func (t DataType) fromString(s string) (any, error) {
	switch t.Kind {
	case KindVarchar, KindChar, KindClob, KindOther:
		return s, nil
	case KindSmallint, KindInteger, KindBigint, KindDecimal, KindDouble:
		return t.fromNumber(json.Number(strings.TrimSpace(s)))
	case KindBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid BOOLEAN %q", s)
		}
		return b, nil
	case KindDate:
		return parseTime(s, DateLayout)
	case KindTime:
		return parseTime(s, TimeLayout)
	case KindTimestamp:
		return parseTime(s, timestampLayouts...)
	case KindBinary:
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid base64 for %s: %w", t.Name, err)
		}
		return b, nil
	case KindUUID:
		u, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid UUID %q: %w", s, err)
		}
		return u, nil
	}
	return nil, fmt.Errorf("cannot convert string to %s", t.Name)
}

func (t DataType) fromNumber(n json.Number) (any, error) {
	switch t.Kind {
	case KindSmallint:
		v, ok := parseInteger(n, 16)
		if !ok {
			return nil, fmt.Errorf("invalid SMALLINT %q", n)
		}
		return int16(v), nil
	case KindInteger:
		v, ok := parseInteger(n, 32)
		if !ok {
			return nil, fmt.Errorf("invalid INTEGER %q", n)
		}
		return int32(v), nil
	case KindBigint:
		v, ok := parseInteger(n, 64)
		if !ok {
			return nil, fmt.Errorf("invalid BIGINT %q", n)
		}
		return v, nil
	case KindDecimal:
		if _, ok := new(big.Rat).SetString(string(n)); !ok {
			return nil, fmt.Errorf("invalid DECIMAL %q", n)
		}
		return DecimalString(n), nil
	case KindDouble:
		v, err := strconv.ParseFloat(string(n), 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("invalid DOUBLE %q", n)
		}
		return v, nil
	case KindVarchar, KindChar, KindClob:
		return string(n), nil
	case KindOther:
		return n, nil
	}
	return nil, fmt.Errorf("cannot convert number to %s", t.Name)
}

// parseInteger parses an integer of the given bit size. Exactly integral
// decimal forms such as "1.0" and "1e2" are accepted.
func parseInteger(n json.Number, bits int) (int64, bool) {
	if v, err := strconv.ParseInt(string(n), 10, bits); err == nil {
		return v, true
	}
	if strings.ContainsAny(string(n), "/_xXoObB") {
		return 0, false
	}
	r, ok := new(big.Rat).SetString(string(n))
	if !ok || !r.IsInt() {
		return 0, false
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	num := r.Num()
	if num.Cmp(limit) >= 0 || num.Cmp(new(big.Int).Neg(limit)) < 0 {
		return 0, false
	}
	return num.Int64(), true
}

func parseTime(s string, layouts ...string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time value %q", s)
}

// Format renders a value of this type as text for serialization. It is the
// inverse of Convert for string input.
func (t DataType) Format(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case DecimalString:
		return string(x), nil
	case json.Number:
		return string(x), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(x), nil
	case uuid.UUID:
		return x.String(), nil
	case time.Time:
		switch t.Kind {
		case KindDate:
			return x.Format(DateLayout), nil
		case KindTime:
			return x.Format(TimeLayout), nil
		default:
			return x.Format(time.RFC3339Nano), nil
		}
	}
	return "", fmt.Errorf("cannot format %T as %s", v, t.Name)
}
