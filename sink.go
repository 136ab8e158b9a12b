package jvmclassfile

// Sink is the big-endian output every class-file structure writes to.
//
// Implementations may fail; structures surface those failures as encode
// errors and never close the sink. The owner of the underlying stream is
// responsible for flushing and closing it.
type Sink interface {
	WriteU1(v uint8) error
	WriteU2(v uint16) error
	WriteU4(v uint32) error
	WriteBytes(p []byte) error
}
