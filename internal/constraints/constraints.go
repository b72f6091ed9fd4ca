// Package constraints provides generic type constraints shared by the internal packages.
package constraints

// Byteseq is any string-like input: a string or a byte slice.
type Byteseq interface {
	~string | ~[]byte
}
