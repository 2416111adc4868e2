// Package codec decodes the two bespoke media encodings found in legacy
// project files: the run-length word-packed Squeak bitmap and the
// variable-bit-depth ADPCM sound stream.
//
// Bitmap forms are stored as 32-bit words, optionally run-length compressed
// with a varint pixel count followed by (runLength<<2 | op) headers. Pixels
// narrower than a word are packed most significant lane first and each row
// starts on a fresh word.
//
// Sounds are Squeak ADPCM: codes of 2 to 5 bits read most significant bit
// first across byte boundaries, expanded against an 89-entry step table.
package codec
