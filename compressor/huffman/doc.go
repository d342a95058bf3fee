// Package huffman implements a byte-oriented Huffman codec with a compact
// self-describing container.
//
// A container is laid out as
//
//	offset 0       uint16 big-endian: trash bits << 13 | tree size in bytes
//	offset 2       tree in pre-order: '*' for an internal node followed by
//	               its left and right subtrees, otherwise the leaf byte,
//	               preceded by '\' when the byte is '*' or '\'
//	offset 2+size  payload, MSB first, the last byte padded with trash
//	               zero bits
//
// The tree size field is descriptive; decoding relies on the marker and
// escape bytes alone. A single-leaf tree assigns the empty code to its
// byte, so its payload is empty and the original length has to travel
// outside the container (see DecompressSize).
package huffman
