// Package sb1 reads legacy Scratch project files (ScratchV01 and ScratchV02).
//
// A project file is a 10-byte signature, a big-endian info block length,
// and two serialized Squeak object blocks: a small info dictionary and the
// object graph rooted at the stage.
//
//	sb1/                 Root package: project container and asset collection
//	├── squeak/          Field tokenizer, object table and typed record views
//	├── codec/           Bitmap and ADPCM sound decompression
//	├── container/       PNG and WAV encoders
//	├── checksum/        CRC-32 and Adler-32 accumulators
//	├── archive/         Zip bundle of decoded assets
//	├── errors/          Structured error types
//	└── cmd/sb1/         Command line tool
//
// # Quick Start
//
//	f, err := sb1.Open(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stage, err := f.Stage()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stage.ObjName())
//
//	images, _ := f.Images()
//	for _, img := range images {
//	    png, err := img.Bytes()
//	    ...
//	}
//
// Decoding is lazy: Open validates the framing, and the object blocks are
// decoded on first access and memoized. A File is safe for concurrent use.
//
// # Errors
//
// All errors are *errors.Error values carrying a phase, a kind and, when
// known, the byte offset and class id involved:
//
//	if errors.Is(err, errors.ErrUnexpectedEOF) {
//	    // truncated file
//	}
package sb1
