package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestCompress_Golden(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect []byte
	}

	testData := [...]testRow{
		{name: "aab", input: "aab", expect: []byte{0xA0, 0x03, '*', 'b', 'a', 0xC0}},
		{name: "abcc", input: "abcc", expect: []byte{0x40, 0x05, '*', 'c', '*', 'a', 'b', 0xB0}},
		{name: "escaped", input: "*\\", expect: []byte{0xC0, 0x05, '*', '\\', '*', '\\', '\\', 0x40}},
		{name: "single", input: "AAAA", expect: []byte{0x00, 0x01, 'A'}},
		{name: "single-escaped", input: "***", expect: []byte{0x00, 0x02, '\\', '*'}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual, err := Compress([]byte(row.input))
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if !bytes.Equal(actual, row.expect) {
				t.Errorf("wrong container:\n\texpect: %#v\n\tactual: %#v", row.expect, actual)
			}
		})
	}
}

func TestCompress_Empty(t *testing.T) {
	if _, err := Compress(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Compress([]byte{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestCompress_InputUnchanged(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog")
	original := append([]byte(nil), input...)
	if _, err := Compress(input); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !bytes.Equal(input, original) {
		t.Errorf("Compress modified its input")
	}
}

func corpus(rng *rand.Rand) []byte {
	size := rng.Intn(4096) + 1
	alphabet := rng.Intn(256) + 1
	skew := rng.Intn(4)
	buf := make([]byte, size)
	for i := range buf {
		symbol := rng.Intn(alphabet)
		for j := 0; j < skew; j++ {
			symbol = min(symbol, rng.Intn(alphabet))
		}
		buf[i] = byte(symbol)
	}
	return buf
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		input := corpus(rng)
		container, err := Compress(input)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}

		var output []byte
		if single, _ := IsSingleSymbol(container); single {
			output, err = DecompressSize(container, len(input))
		} else {
			output, err = Decompress(container)
		}
		if err != nil {
			t.Fatalf("case %d: decompress: %v", i, err)
		}
		if !bytes.Equal(input, output) {
			t.Fatalf("case %d: round trip of %d bytes produced %d different bytes", i, len(input), len(output))
		}

		sized, err := DecompressSize(container, len(input))
		if err != nil {
			t.Fatalf("case %d: DecompressSize: %v", i, err)
		}
		if !bytes.Equal(input, sized) {
			t.Fatalf("case %d: sized round trip differs", i)
		}
	}
}

func TestRoundTrip_Text(t *testing.T) {
	for _, input := range []string{
		"ab",
		"abracadabra",
		"**\\\\*\\ escaped * and \\ as data",
		"\x00\x01\x02\x00\xff\xfe\xff",
		"mississippi river",
	} {
		container, err := Compress([]byte(input))
		if err != nil {
			t.Fatalf("Compress(%q): %v", input, err)
		}
		output, err := Decompress(container)
		if err != nil {
			t.Fatalf("Decompress(%q): %v", input, err)
		}
		if string(output) != input {
			t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, output)
		}
	}
}

func TestRoundTrip_FullAlphabet(t *testing.T) {
	input := make([]byte, 0, 256*3)
	for i := 0; i < 256; i++ {
		for j := 0; j <= i%3; j++ {
			input = append(input, byte(i))
		}
	}
	container, err := Compress(input)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	output, err := Decompress(container)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(input, output) {
		t.Errorf("round trip over the full alphabet differs")
	}
}

func TestCompress_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		input := corpus(rng)
		first, err := Compress(input)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		second, _ := Compress(input)
		if !bytes.Equal(first, second) {
			t.Fatalf("case %d: two containers for the same input differ", i)
		}
	}
}

func TestSingleSymbol(t *testing.T) {
	input := bytes.Repeat([]byte{0x41}, 1000)
	container, err := Compress(input)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	root, _, payloadStart, err := Decode(container)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := root.(*Leaf); !ok {
		t.Errorf("expected a single-leaf tree, got %v", root)
	}
	if payloadStart != len(container) {
		t.Errorf("expected an empty payload, got %d bytes", len(container)-payloadStart)
	}

	if _, err := Decompress(container); !errors.Is(err, ErrLengthRequired) {
		t.Errorf("expected ErrLengthRequired, got %v", err)
	}
	output, err := DecompressSize(container, 1000)
	if err != nil {
		t.Fatalf("DecompressSize: %v", err)
	}
	if !bytes.Equal(input, output) {
		t.Errorf("expected 1000 bytes of 'A', got %d bytes", len(output))
	}
}

func TestDecompress_Corrupt(t *testing.T) {
	type testRow struct {
		name      string
		container []byte
		size      int
	}

	testData := [...]testRow{
		{name: "payload-past-leaf", container: []byte{0x00, 0x01, 'A', 0xFF}, size: -1},
		{name: "payload-past-leaf-sized", container: []byte{0x00, 0x01, 'A', 0x80}, size: 3},
		{name: "ends-inside-code", container: []byte{0xE0, 0x05, '*', 'c', '*', 'a', 'b', 0xB0}, size: -1},
		{name: "wrong-length", container: []byte{0x40, 0x05, '*', 'c', '*', 'a', 'b', 0xB0}, size: 5},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var output []byte
			var err error
			if row.size < 0 {
				output, err = Decompress(row.container)
			} else {
				output, err = DecompressSize(row.container, row.size)
			}
			if !errors.Is(err, ErrCorruptStream) {
				t.Errorf("expected ErrCorruptStream, got %v", err)
			}
			if output != nil {
				t.Errorf("expected no partial output, got %q", output)
			}
		})
	}
}

func TestDecompress_Truncated(t *testing.T) {
	if _, err := Decompress([]byte{0xA0}); !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("expected ErrTruncatedHeader, got %v", err)
	}
	if _, err := Decompress([]byte{0xA0, 0x03, '*', 'b'}); !errors.Is(err, ErrTruncatedTree) {
		t.Errorf("expected ErrTruncatedTree, got %v", err)
	}
}

func TestDecompressSize_Negative(t *testing.T) {
	if _, err := DecompressSize([]byte{0x00, 0x01, 'A'}, -1); err == nil {
		t.Errorf("expected an error for a negative size")
	}
}
