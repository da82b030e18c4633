// Package cos implements the low-level PDF COS (Carousel Object System)
// byte parser and object model used by the annotation editor's document
// layer.
//
// The package is organised bottom-up:
//
//	ByteReader   random-access primitives over an immutable byte buffer
//	Lexer        classifies the value at a position and finds its bounds
//	ValueParser  typed decoders (number, name, string, boolean, arrays)
//	             built on top of the Lexer
//	ObjectIndex  maps indirect-object ids to byte ranges (the Resolver
//	             contract, plus one concrete XrefTable implementation)
//	PdfDict /    the object model: dictionaries and streams with identity,
//	PdfStream    change tracking and byte-exact re-serialization
//	ResourceDict the canonical hard case: a dict of named sub-maps that
//	             lazily resolves references into typed children
//
// A typical read starts from a byte buffer and an xref table:
//
//	r, err := cos.NewByteReader(cos.NewByteBuffer(data))
//	idx, err := cos.NewXrefTable(r, cos.ParserOptions{})
//	info := idx.Resolve(17) // nil for a dangling reference
//	obj, err := idx.Get(17) // or parse and resolve in one step
//
// The package does not schedule I/O and never blocks; the only asynchronous
// surface is the optional decode callback on image XObjects (see
// ImageStream.AsyncDecode), which the host may use to defer expensive work.
package cos
