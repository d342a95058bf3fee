package huffman

import (
	"errors"
	"fmt"

	"github.com/chronos-tachyon/assert"
)

var (
	ErrEmptyInput      = errors.New("huffman: empty input")
	ErrFieldOverflow   = errors.New("huffman: header field overflow")
	ErrTruncatedHeader = errors.New("huffman: truncated header")
	ErrTruncatedTree   = errors.New("huffman: truncated tree")
	ErrCorruptStream   = errors.New("huffman: corrupt stream")
	// ErrLengthRequired is returned when a container holds a single-leaf
	// tree: its payload is empty, so the original length must be supplied
	// through DecompressSize.
	ErrLengthRequired = errors.New("huffman: single-symbol container needs the original length")
)

// Compress returns the container for buf. buf is not modified.
func Compress(buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyInput
	}
	symbolFreq := CountFrequencies(buf)
	root, err := BuildTree(NewPriorityList(symbolFreq))
	if err != nil {
		return nil, err
	}
	assert.Assertf(countLeaves(root) == symbolFreq.Distinct(), "tree has %d leaves for %d distinct bytes", countLeaves(root), symbolFreq.Distinct())
	return Encode(root, GenerateCodes(root), buf)
}

// Decompress reverses Compress for containers whose tree has at least two
// leaves.
func Decompress(container []byte) ([]byte, error) {
	return decompress(container, -1)
}

// DecompressSize reverses Compress when the original length is known. It
// is the only way to expand a single-symbol container. For other
// containers the decoded length must equal size.
func DecompressSize(container []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative size %d", size)
	}
	return decompress(container, size)
}

func decompress(container []byte, size int) ([]byte, error) {
	root, trash, payloadStart, err := Decode(container)
	if err != nil {
		return nil, err
	}
	return decodePayload(root, container[payloadStart:], trash, size)
}

// IsSingleSymbol reports whether a container holds a single-leaf tree.
func IsSingleSymbol(container []byte) (bool, error) {
	root, _, _, err := Decode(container)
	if err != nil {
		return false, err
	}
	_, ok := root.(*Leaf)
	return ok, nil
}
