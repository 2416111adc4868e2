// Package squeak decodes the Squeak object serialization used inside
// legacy project files.
//
// Decoding runs in three passes over one buffer:
//
//  1. Tokenizer reads the class-id grammar into flat tokens: inline values,
//     collection headers, versioned record headers and object references.
//  2. TypeIterator folds each header and its children into one Value,
//     wrapping known classes in typed views such as *Stage or *ImageMedia.
//  3. FixReferences replaces every *Reference with the table entry it names.
//
// Decode runs all three. Typed views expose named accessors over the
// positional fields and compute derived assets (PNG, WAV, fingerprints)
// lazily, at most once per record.
package squeak
