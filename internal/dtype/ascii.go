package dtype

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strconv"

	"github.com/robert-malhotra/go-gridformat/field"
)

var native = binary.NativeEndian

// AppendFunc appends the text of one native-order element to dst.
type AppendFunc func(dst, elem []byte) []byte

// ParseFunc parses token into one native-order element stored in elem.
type ParseFunc func(elem []byte, token string) error

// Formatter returns the ascii formatter for elements of precision p.
func Formatter(p field.Precision) (AppendFunc, error) {
	return field.Visit[AppendFunc](p, formatter{})
}

// Parser returns the ascii parser for elements of precision p.
func Parser(p field.Precision) (ParseFunc, error) {
	return field.Visit[ParseFunc](p, parser{})
}

type formatter struct{}

func (formatter) Int8() (AppendFunc, error) {
	return func(dst, b []byte) []byte { return strconv.AppendInt(dst, int64(int8(b[0])), 10) }, nil
}

func (formatter) Int16() (AppendFunc, error) {
	return func(dst, b []byte) []byte { return strconv.AppendInt(dst, int64(int16(native.Uint16(b))), 10) }, nil
}

func (formatter) Int32() (AppendFunc, error) {
	return func(dst, b []byte) []byte { return strconv.AppendInt(dst, int64(int32(native.Uint32(b))), 10) }, nil
}

func (formatter) Int64() (AppendFunc, error) {
	return func(dst, b []byte) []byte { return strconv.AppendInt(dst, int64(native.Uint64(b)), 10) }, nil
}

func (formatter) Uint8() (AppendFunc, error) {
	return func(dst, b []byte) []byte { return strconv.AppendUint(dst, uint64(b[0]), 10) }, nil
}

func (formatter) Uint16() (AppendFunc, error) {
	return func(dst, b []byte) []byte { return strconv.AppendUint(dst, uint64(native.Uint16(b)), 10) }, nil
}

func (formatter) Uint32() (AppendFunc, error) {
	return func(dst, b []byte) []byte { return strconv.AppendUint(dst, uint64(native.Uint32(b)), 10) }, nil
}

func (formatter) Uint64() (AppendFunc, error) {
	return func(dst, b []byte) []byte { return strconv.AppendUint(dst, native.Uint64(b), 10) }, nil
}

func (formatter) Float32() (AppendFunc, error) {
	return func(dst, b []byte) []byte {
		return strconv.AppendFloat(dst, float64(math.Float32frombits(native.Uint32(b))), 'g', -1, 32)
	}, nil
}

func (formatter) Float64() (AppendFunc, error) {
	return func(dst, b []byte) []byte {
		return strconv.AppendFloat(dst, math.Float64frombits(native.Uint64(b)), 'g', -1, 64)
	}, nil
}

// Chars writes characters as their codes, as VTK does for String arrays.
func (formatter) Chars() (AppendFunc, error) {
	return formatter{}.Uint8()
}

type parser struct{}

func parseSigned(token string, bits int) (int64, error) {
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, field.Errorf(field.ErrValue, "parsing %q: %v", token, err)
	}
	if bits < 64 && (v < -(1<<(bits-1)) || v >= 1<<(bits-1)) {
		return 0, field.Errorf(field.ErrValue, "%q overflows int%d", token, bits)
	}
	return v, nil
}

func parseUnsigned(token string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, field.Errorf(field.ErrValue, "parsing %q: %v", token, err)
	}
	if bits < 64 && v >= 1<<bits {
		return 0, field.Errorf(field.ErrValue, "%q overflows uint%d", token, bits)
	}
	return v, nil
}

func (parser) Int8() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := parseSigned(tok, 8)
		b[0] = byte(v)
		return err
	}, nil
}

func (parser) Int16() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := parseSigned(tok, 16)
		native.PutUint16(b, uint16(v))
		return err
	}, nil
}

func (parser) Int32() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := parseSigned(tok, 32)
		native.PutUint32(b, uint32(v))
		return err
	}, nil
}

func (parser) Int64() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := parseSigned(tok, 64)
		native.PutUint64(b, uint64(v))
		return err
	}, nil
}

func (parser) Uint8() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := parseUnsigned(tok, 8)
		b[0] = byte(v)
		return err
	}, nil
}

func (parser) Uint16() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := parseUnsigned(tok, 16)
		native.PutUint16(b, uint16(v))
		return err
	}, nil
}

func (parser) Uint32() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := parseUnsigned(tok, 32)
		native.PutUint32(b, uint32(v))
		return err
	}, nil
}

func (parser) Uint64() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := parseUnsigned(tok, 64)
		native.PutUint64(b, v)
		return err
	}, nil
}

func (parser) Float32() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return field.Errorf(field.ErrValue, "parsing %q: %v", tok, err)
		}
		native.PutUint32(b, math.Float32bits(float32(v)))
		return nil
	}, nil
}

func (parser) Float64() (ParseFunc, error) {
	return func(b []byte, tok string) error {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return field.Errorf(field.ErrValue, "parsing %q: %v", tok, err)
		}
		native.PutUint64(b, math.Float64bits(v))
		return nil
	}, nil
}

func (parser) Chars() (ParseFunc, error) {
	return parser{}.Uint8()
}

// IsSpace reports whether c separates ascii values.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// tokenizer splits ascii data into whitespace separated tokens. The data
// ends at the first '<', which starts the closing tag of its element.
type tokenizer struct {
	r    io.ByteReader
	tok  []byte
	done bool
}

func newTokenizer(r io.Reader) *tokenizer {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &tokenizer{r: br}
}

// next returns the next token, or io.EOF at the end of the data. The token
// is only valid until the following call.
func (t *tokenizer) next() ([]byte, error) {
	t.tok = t.tok[:0]
	for !t.done {
		c, err := t.r.ReadByte()
		switch {
		case err == io.EOF || (err == nil && c == '<'):
			t.done = true
		case err != nil:
			return nil, err
		case IsSpace(c):
			if len(t.tok) > 0 {
				return t.tok, nil
			}
		default:
			t.tok = append(t.tok, c)
		}
	}
	if len(t.tok) > 0 {
		return t.tok, nil
	}
	return nil, io.EOF
}

// ParseASCII reads n whitespace separated values of precision p from r.
func ParseASCII(r io.Reader, p field.Precision, n int) (*field.Serialization, error) {
	parse, err := Parser(p)
	if err != nil {
		return nil, err
	}
	size := p.Size()
	out := field.NewSerialization(n * size)
	buf := out.Bytes()

	tokens := newTokenizer(r)
	for i := 0; i < n; i++ {
		tok, err := tokens.next()
		if err == io.EOF {
			return nil, field.Errorf(field.ErrSize, "expected %d ascii values, found %d", n, i)
		}
		if err != nil {
			return nil, err
		}
		if err := parse(buf[i*size:(i+1)*size], string(tok)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CountASCII counts the values in r before the next tag.
func CountASCII(r io.Reader) (int, error) {
	tokens := newTokenizer(r)
	for n := 0; ; n++ {
		if _, err := tokens.next(); err == io.EOF {
			return n, nil
		} else if err != nil {
			return 0, err
		}
	}
}
