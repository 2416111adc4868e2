// Package checksum implements the incremental CRC-32 and Adler-32 digests
// embedded in PNG chunks and zlib streams.
//
// Both accumulators follow the PNG (ISO/IEC 15948) and RFC 1950 reference
// algorithms bit for bit. Update returns the receiver so calls chain:
//
//	sum := checksum.NewCRC32().Update(typ, 0, 4).Update(body, 0, len(body)).Digest()
package checksum

// crcTable is the reflected 0xEDB88320 lookup table.
var crcTable = func() [256]uint32 {
	var t [256]uint32
	for i := range t {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 != 0 {
				c = 0xEDB88320 ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return t
}()

// CRC32 is a running CRC-32 digest. The zero value is ready to use.
type CRC32 struct {
	crc uint32
}

// NewCRC32 returns an empty CRC-32 accumulator.
func NewCRC32() *CRC32 {
	return &CRC32{}
}

// Update feeds buf[offset:offset+length] into the digest.
func (c *CRC32) Update(buf []byte, offset, length int) *CRC32 {
	crc := ^c.crc
	for _, b := range buf[offset : offset+length] {
		crc = (crc >> 8) ^ crcTable[byte(crc)^b]
	}
	c.crc = ^crc
	return c
}

// Write implements io.Writer.
func (c *CRC32) Write(p []byte) (int, error) {
	c.Update(p, 0, len(p))
	return len(p), nil
}

// Digest returns the current checksum. It is 0 before any update.
func (c *CRC32) Digest() uint32 {
	return c.crc
}

// Reset clears the accumulator.
func (c *CRC32) Reset() {
	c.crc = 0
}

const adlerMod = 65521

// Adler32 is a running Adler-32 digest. Use NewAdler32; the zero value
// does not hold the initial state of 1.
type Adler32 struct {
	a, b uint32
}

// NewAdler32 returns an empty Adler-32 accumulator.
func NewAdler32() *Adler32 {
	return &Adler32{a: 1}
}

// Update feeds buf[offset:offset+length] into the digest.
func (d *Adler32) Update(buf []byte, offset, length int) *Adler32 {
	a, b := d.a, d.b
	for _, x := range buf[offset : offset+length] {
		a = (a + uint32(x)) % adlerMod
		b = (b + a) % adlerMod
	}
	d.a, d.b = a, b
	return d
}

// Write implements io.Writer.
func (d *Adler32) Write(p []byte) (int, error) {
	d.Update(p, 0, len(p))
	return len(p), nil
}

// Digest returns the current checksum. It is 1 before any update.
func (d *Adler32) Digest() uint32 {
	return d.b<<16 | d.a
}

// Reset restores the initial state.
func (d *Adler32) Reset() {
	d.a, d.b = 1, 0
}
