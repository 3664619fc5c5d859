package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/vbonduro/ecoexchange/internal/domain"
)

// FormatTimestamp renders t the way Python's datetime.isoformat does for a
// naive local time: no UTC offset, microseconds only when non-zero.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02T15:04:05.000000")
}

// hashInput encodes data as Python's json.dumps does with default options:
// ", " and ": " separators, every non-ASCII character escaped as \uXXXX,
// floats in repr form. Key order is kept.
func hashInput(data domain.Fields) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeObject(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeObject(buf *bytes.Buffer, obj domain.Fields) error {
	buf.WriteByte('{')
	for i, f := range obj {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeString(buf, f.Key)
		buf.WriteString(": ")
		if err := writeValue(buf, f.Value); err != nil {
			return fmt.Errorf("invalid value for %q: %w", f.Key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValue(buf *bytes.Buffer, raw json.RawMessage) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		buf.WriteString("null")
		return nil
	}

	switch raw[0] {
	case '{':
		var obj domain.Fields
		if err := json.Unmarshal(raw, &obj); err != nil {
			return err
		}
		return writeObject(buf, obj)
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return err
		}
		buf.WriteByte('[')
		for i, elem := range elems {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := writeValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		writeString(buf, s)
		return nil
	case 't', 'f', 'n':
		if !json.Valid(raw) {
			return fmt.Errorf("invalid literal %s", raw)
		}
		buf.Write(raw)
		return nil
	default:
		return writeNumber(buf, string(raw))
	}
}

func writeNumber(buf *bytes.Buffer, s string) error {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			buf.WriteString(strconv.FormatInt(n, 10))
			return nil
		}
		// Python ints are unbounded; keep the digits as written.
		if !json.Valid([]byte(s)) {
			return fmt.Errorf("invalid number %s", s)
		}
		buf.WriteString(s)
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", s, err)
	}
	buf.WriteString(formatFloat(f))
	return nil
}

// formatFloat matches Python's float repr: shortest round-trip digits,
// positional for decimal exponents in [-4, 16), always showing a fraction or
// an exponent.
func formatFloat(f float64) string {
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(sci, "e")
	if n, _ := strconv.Atoi(exp); n < -4 || n >= 16 {
		return mant + "e" + exp
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r <= 0x7e:
				buf.WriteRune(r)
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(buf, `\u%04x\u%04x`, hi, lo)
			default:
				fmt.Fprintf(buf, `\u%04x`, r)
			}
		}
	}
	buf.WriteByte('"')
}
