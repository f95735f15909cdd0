package encoding

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-gridformat/field"
)

// Base64 writes padded base64 text. Unbuffered streams pad every Write
// separately, the layout VTK itself produces for headers and payloads.
// Buffered streams encode all writes as one continuous base64 sequence.
type Base64 struct {
	Buffered bool
}

func (Base64) Name() string { return NameBase64 }

func (b Base64) NewStream(w io.Writer) Stream {
	if b.Buffered {
		return &base64Stream{enc: base64.NewEncoder(base64.StdEncoding, w), buffered: true}
	}
	return &base64Stream{w: w}
}

type base64Stream struct {
	w        io.Writer
	enc      io.WriteCloser
	buffered bool
}

func (s *base64Stream) Write(data []byte, _ field.Precision) error {
	if len(data) == 0 {
		return nil
	}
	if s.buffered {
		_, err := s.enc.Write(data)
		return err
	}
	buf := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(buf, data)
	_, err := s.w.Write(buf)
	return err
}

func (s *base64Stream) Close() error {
	if s.buffered {
		return s.enc.Close()
	}
	return nil
}

// base64Reader decodes base64 text one 4-character quantum at a time so that
// padding may appear in the middle of the stream. Whitespace is skipped and a
// '<' ends the stream.
type base64Reader struct {
	r   io.ByteScanner
	out []byte
	buf [3]byte
	err error
}

func newBase64Reader(r io.Reader) *base64Reader {
	bs, ok := r.(io.ByteScanner)
	if !ok {
		bs = bufio.NewReader(r)
	}
	return &base64Reader{r: bs}
}

func (d *base64Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(d.out) == 0 {
			if d.err != nil {
				break
			}
			d.fill()
			continue
		}
		c := copy(p[n:], d.out)
		d.out = d.out[c:]
		n += c
	}
	if n == 0 && d.err != nil {
		return 0, d.err
	}
	return n, nil
}

func (d *base64Reader) fill() {
	var quantum [4]byte
	for i := 0; i < len(quantum); {
		c, err := d.r.ReadByte()
		if err == nil && c == '<' {
			d.r.UnreadByte()
			err = io.EOF
		}
		if err != nil {
			if err == io.EOF && i > 0 {
				err = io.ErrUnexpectedEOF
			}
			d.err = err
			return
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		quantum[i] = c
		i++
	}
	n, err := base64.StdEncoding.Decode(d.buf[:], quantum[:])
	if err != nil {
		d.err = fmt.Errorf("decoding base64 quantum %q: %w", quantum[:], err)
		return
	}
	d.out = d.buf[:n]
}
