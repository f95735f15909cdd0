package binary

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriterAtPatches(t *testing.T) {
	var buf Buffer
	w := NewWriter(&buf)
	if _, err := w.WriteString("offset=\"    \" end"); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	if _, err := w.At(8).WriteString("42"); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if got := string(buf.Bytes()); got != "offset=\"42  \" end" {
		t.Errorf("unexpected patched content %q", got)
	}
	if w.Pos() != int64(buf.Len()) {
		t.Errorf("patch moved the original writer to %d", w.Pos())
	}
}

func TestBufferGrowsWithGaps(t *testing.T) {
	var buf Buffer
	if _, err := buf.WriteAt([]byte{1}, 3); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0, 0, 0, 1}) {
		t.Errorf("unexpected buffer %v", buf.Bytes())
	}
}

func TestConfigAppendHeader(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []byte
	}{
		{"uint32 little", Config{binary.LittleEndian, 4}, []byte{1, 0, 0, 0, 2, 0, 0, 0}},
		{"uint32 big", Config{binary.BigEndian, 4}, []byte{0, 0, 0, 1, 0, 0, 0, 2}},
		{"uint64 little", Config{binary.LittleEndian, 8}, []byte{1, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.AppendHeader(nil, 1, 2)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if v := tt.cfg.Header(got[tt.cfg.HeaderSize:]); v != 2 {
				t.Errorf("Header decoded %d", v)
			}
		})
	}
}
