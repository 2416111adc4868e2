package checksum

import (
	"hash/adler32"
	"hash/crc32"
	"io"
	"testing"
)

func TestEmptyDigests(t *testing.T) {
	if got := NewCRC32().Digest(); got != 0 {
		t.Errorf("CRC32 empty digest: got %#x, want 0", got)
	}
	if got := NewAdler32().Digest(); got != 1 {
		t.Errorf("Adler32 empty digest: got %#x, want 1", got)
	}
	var zero CRC32
	if got := zero.Digest(); got != 0 {
		t.Errorf("zero CRC32 digest: got %#x, want 0", got)
	}
}

func TestKnownVectors(t *testing.T) {
	tests := []struct {
		in    string
		crc   uint32
		adler uint32
	}{
		{"", 0x00000000, 0x00000001},
		{"a", 0xe8b7be43, 0x00620062},
		{"123456789", 0xcbf43926, 0x091e01de},
		{"Wikipedia", 0xadaac02e, 0x11e60398},
		{"IEND", 0xae426082, 0x02d70121},
	}

	for _, tt := range tests {
		buf := []byte(tt.in)
		if got := NewCRC32().Update(buf, 0, len(buf)).Digest(); got != tt.crc {
			t.Errorf("CRC32(%q): got %#08x, want %#08x", tt.in, got, tt.crc)
		}
		if got := NewAdler32().Update(buf, 0, len(buf)).Digest(); got != tt.adler {
			t.Errorf("Adler32(%q): got %#08x, want %#08x", tt.in, got, tt.adler)
		}
	}
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	data := make([]byte, 70000)
	for i := range data {
		data[i] = byte(i*7 + i>>8)
	}

	crc := NewCRC32()
	adler := NewAdler32()
	for off := 0; off < len(data); off += 4099 {
		n := 4099
		if off+n > len(data) {
			n = len(data) - off
		}
		crc.Update(data, off, n)
		adler.Update(data, off, n)
	}

	if got, want := crc.Digest(), crc32.ChecksumIEEE(data); got != want {
		t.Errorf("CRC32 incremental: got %#08x, want %#08x", got, want)
	}
	if got, want := adler.Digest(), adler32.Checksum(data); got != want {
		t.Errorf("Adler32 incremental: got %#08x, want %#08x", got, want)
	}
}

func TestUpdateRespectsOffset(t *testing.T) {
	buf := []byte("xx123456789yy")
	if got := NewCRC32().Update(buf, 2, 9).Digest(); got != 0xcbf43926 {
		t.Errorf("CRC32 with offset: got %#08x", got)
	}
	if got := NewAdler32().Update(buf, 2, 9).Digest(); got != 0x091e01de {
		t.Errorf("Adler32 with offset: got %#08x", got)
	}
}

func TestWriterAndReset(t *testing.T) {
	crc := NewCRC32()
	adler := NewAdler32()
	w := io.MultiWriter(crc, adler)
	if _, err := io.WriteString(w, "123456789"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if crc.Digest() != 0xcbf43926 || adler.Digest() != 0x091e01de {
		t.Errorf("io.Writer path: crc %#x adler %#x", crc.Digest(), adler.Digest())
	}

	crc.Reset()
	adler.Reset()
	if crc.Digest() != 0 || adler.Digest() != 1 {
		t.Errorf("after Reset: crc %#x adler %#x", crc.Digest(), adler.Digest())
	}
}
