package huffman

import (
	"sort"
	"strings"
)

// BitString is a code written as '0' and '1' characters.
type BitString string

// CodeTable maps every byte value present in the input to its code.
type CodeTable map[byte]BitString

// GenerateCodes walks the tree depth first, appending '0' for a left turn
// and '1' for a right turn. A lone leaf gets the empty code.
func GenerateCodes(root Tree) CodeTable {
	codes := make(CodeTable)
	getSymbolEncoding(root, codes, make([]byte, 0, Height(root)+1))
	return codes
}

func getSymbolEncoding(tree Tree, codes CodeTable, currentPrefix []byte) {
	switch node := tree.(type) {
	case *Leaf:
		codes[node.Symbol] = BitString(currentPrefix)
	case *Internal:
		getSymbolEncoding(node.Left, codes, append(currentPrefix, '0'))
		getSymbolEncoding(node.Right, codes, append(currentPrefix, '1'))
	}
}

// TotalBits is the payload length in bits for a buffer with the given
// frequencies.
func (codes CodeTable) TotalBits(table FrequencyTable) uint64 {
	var total uint64
	for symbol, code := range codes {
		total += table[symbol] * uint64(len(code))
	}
	return total
}

// Empty reports whether every code in the table is the empty string.
func (codes CodeTable) Empty() bool {
	for _, code := range codes {
		if len(code) > 0 {
			return false
		}
	}
	return true
}

func (codes CodeTable) String() string {
	symbols := make([]int, 0, len(codes))
	for symbol := range codes {
		symbols = append(symbols, int(symbol))
	}
	sort.Ints(symbols)

	var sb strings.Builder
	sb.WriteString("CodeTable{\n")
	for _, symbol := range symbols {
		sb.WriteString("\t")
		sb.WriteString(quoteSymbol(byte(symbol)))
		sb.WriteString(" = \"")
		sb.WriteString(string(codes[byte(symbol)]))
		sb.WriteString("\"\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}
