package huffman

// FrequencyTable holds the occurrence count of every byte value.
type FrequencyTable [256]uint64

func CountFrequencies(buf []byte) FrequencyTable {
	var table FrequencyTable
	for _, b := range buf {
		table[b]++
	}
	return table
}

// Distinct reports how many byte values occur at least once.
func (table *FrequencyTable) Distinct() int {
	count := 0
	for _, freq := range table {
		if freq > 0 {
			count++
		}
	}
	return count
}
