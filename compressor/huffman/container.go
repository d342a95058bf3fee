package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/FitrahHaque/Huffman-Engine/compressor/bitpack"
	"github.com/chronos-tachyon/assert"
)

const (
	// Marker precedes the two children of an internal node.
	Marker = '*'
	// Escape precedes a leaf whose value is Marker or Escape.
	Escape = '\\'

	HeaderSize  = 2
	MaxTrash    = 7
	MaxTreeSize = 0x1FFF
	trashShift  = 13

	// MaxTreeDepth bounds the nesting of internal nodes. A tree over 256
	// leaves has height at most 255, so a marker deeper than that never
	// comes from WriteTree.
	MaxTreeDepth = 255
)

func needsEscape(symbol byte) bool {
	return symbol == Marker || symbol == Escape
}

func quoteSymbol(symbol byte) string {
	if symbol >= 0x20 && symbol < 0x7f {
		return strconv.QuoteRune(rune(symbol))
	}
	return fmt.Sprintf("0x%02x", symbol)
}

// EncodeHeader packs the trash bit count into the top 3 bits and the tree
// size into the low 13 bits.
func EncodeHeader(trash, treeSize int) (uint16, error) {
	if trash < 0 || trash > MaxTrash {
		return 0, fmt.Errorf("trash bit count %d outside 0..%d: %w", trash, MaxTrash, ErrFieldOverflow)
	}
	if treeSize < 0 || treeSize > MaxTreeSize {
		return 0, fmt.Errorf("tree size %d outside 0..%d: %w", treeSize, MaxTreeSize, ErrFieldOverflow)
	}
	return uint16(trash)<<trashShift | uint16(treeSize), nil
}

func DecodeHeader(header uint16) (trash, treeSize int) {
	return int(header >> trashShift), int(header & MaxTreeSize)
}

// WriteTree serializes tree in pre-order.
func WriteTree(w io.ByteWriter, tree Tree) error {
	switch node := tree.(type) {
	case *Internal:
		if err := w.WriteByte(Marker); err != nil {
			return err
		}
		if err := WriteTree(w, node.Left); err != nil {
			return err
		}
		return WriteTree(w, node.Right)
	case *Leaf:
		if needsEscape(node.Symbol) {
			if err := w.WriteByte(Escape); err != nil {
				return err
			}
		}
		return w.WriteByte(node.Symbol)
	}
	return fmt.Errorf("cannot serialize tree node %v", tree)
}

// ReadTree reverses WriteTree. The serialization terminates on its own, so
// exactly one tree is consumed from r.
func ReadTree(r io.ByteReader) (Tree, error) {
	return readTree(r, 0)
}

// readTree reads one subtree whose root sits below depth internal nodes.
func readTree(r io.ByteReader, depth int) (Tree, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, truncatedTree(err)
	}
	switch b {
	case Marker:
		if depth >= MaxTreeDepth {
			return nil, fmt.Errorf("tree nests deeper than %d: %w", MaxTreeDepth, ErrCorruptStream)
		}
		left, err := readTree(r, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := readTree(r, depth+1)
		if err != nil {
			return nil, err
		}
		return NewInternal(left, right), nil
	case Escape:
		if b, err = r.ReadByte(); err != nil {
			return nil, truncatedTree(err)
		}
	}
	return NewLeaf(b, 0), nil
}

func truncatedTree(err error) error {
	if err == io.EOF {
		return fmt.Errorf("input ended inside the tree: %w", ErrTruncatedTree)
	}
	return err
}

// Encode writes the container for buf: header, tree, then the payload.
func Encode(root Tree, codes CodeTable, buf []byte) ([]byte, error) {
	assertFullTree(root)
	treeSize := TreeSize(root)

	var totalBits uint64
	for _, b := range buf {
		code, ok := codes[b]
		if !ok {
			return nil, fmt.Errorf("symbol %s does not exist in huffman tree", quoteSymbol(b))
		}
		totalBits += uint64(len(code))
	}
	trash := int((8 - totalBits%8) % 8)

	header, err := EncodeHeader(trash, treeSize)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Grow(HeaderSize + treeSize + int((totalBits+7)/8))
	out.Write(binary.BigEndian.AppendUint16(nil, header))
	if err := WriteTree(&out, root); err != nil {
		return nil, err
	}
	if totalBits == 0 {
		return out.Bytes(), nil
	}

	packer := bitpack.NewPacker(&out)
	for _, b := range buf {
		if err := packer.WriteCode(string(codes[b])); err != nil {
			return nil, err
		}
	}
	padding, err := packer.Flush()
	if err != nil {
		return nil, err
	}
	assert.Assertf(int(padding) == trash, "packer padded %d bits, header says %d", padding, trash)
	return out.Bytes(), nil
}

// Decode parses the header and the tree. The payload starts at
// container[payloadStart:].
func Decode(container []byte) (root Tree, trash int, payloadStart int, err error) {
	if len(container) < HeaderSize {
		return nil, 0, 0, fmt.Errorf("container of %d bytes has no header: %w", len(container), ErrTruncatedHeader)
	}
	trash, _ = DecodeHeader(binary.BigEndian.Uint16(container))

	r := bytes.NewReader(container[HeaderSize:])
	if root, err = ReadTree(r); err != nil {
		return nil, 0, 0, err
	}
	payloadStart = len(container) - r.Len()
	return root, trash, payloadStart, nil
}

// decodePayload walks the tree once per meaningful payload bit and emits a
// byte at every leaf. A negative size means the length is unknown.
func decodePayload(root Tree, payload []byte, trash int, size int) ([]byte, error) {
	unpacker := bitpack.NewUnpacker(payload, uint8(trash))

	if leaf, ok := root.(*Leaf); ok {
		if unpacker.Remaining() > 0 {
			return nil, fmt.Errorf("payload bit descends past leaf %s: %w", quoteSymbol(leaf.Symbol), ErrCorruptStream)
		}
		if size < 0 {
			return nil, ErrLengthRequired
		}
		return bytes.Repeat([]byte{leaf.Symbol}, size), nil
	}

	var out []byte
	if size >= 0 {
		out = make([]byte, 0, size)
	}
	cursor := root
	for position := uint64(0); unpacker.Remaining() > 0; position++ {
		bit, err := unpacker.ReadBit()
		if err != nil {
			return nil, err
		}
		node, ok := cursor.(*Internal)
		if !ok {
			return nil, fmt.Errorf("payload bit %d descends past a leaf: %w", position, ErrCorruptStream)
		}
		if bit {
			cursor = node.Right
		} else {
			cursor = node.Left
		}
		switch next := cursor.(type) {
		case *Leaf:
			out = append(out, next.Symbol)
			cursor = root
		case *Internal:
		default:
			return nil, fmt.Errorf("payload bit %d leads to a missing child: %w", position, ErrCorruptStream)
		}
	}
	if cursor != root {
		return nil, fmt.Errorf("payload ends inside a code: %w", ErrCorruptStream)
	}
	if size >= 0 && len(out) != size {
		return nil, fmt.Errorf("decoded %d bytes, expected %d: %w", len(out), size, ErrCorruptStream)
	}
	return out, nil
}
