package treegram

import "fmt"

// --- Blocks of terminal positions ------------------------------------------

// A Block is a maximal run of terminal positions without a gap. It stores the
// first and the last position of the run, both inclusive. Positions are
// sentence-local, contiguous integers starting at 0.
//
// The yield of a constituent in a treebank tree is a sorted sequence of
// blocks. For continuous constituents this sequence has length 1; for
// discontinuous constituents (as found, e.g., in the German NeGra/TIGER
// treebanks) it is longer.
type Block [2]int // (from…to)

// From returns the first terminal position of a block.
func (b Block) From() int {
	return b[0]
}

// To returns the last terminal position of a block, inclusive.
func (b Block) To() int {
	return b[1]
}

// Len returns the number of positions covered by a block.
func (b Block) Len() int {
	return b[1] - b[0] + 1
}

// Contains checks whether a position falls within the block.
func (b Block) Contains(pos int) bool {
	return b[0] <= pos && pos <= b[1]
}

func (b Block) String() string {
	return fmt.Sprintf("(%d…%d)", b[0], b[1])
}

// Fanout returns the number of blocks of a span, i.e. the fan-out of the
// constituent covering it. A continuous constituent has fan-out 1.
func Fanout(span []Block) int {
	return len(span)
}

// CoverBlocks segments a sorted sequence of terminal positions into maximal
// gap-free runs. The input must be sorted in increasing order and free of
// duplicates; the output is the span of a constituent covering exactly
// these positions.
func CoverBlocks(positions []int) []Block {
	if len(positions) == 0 {
		return nil
	}
	blocks := make([]Block, 0, 1)
	current := Block{positions[0], positions[0]}
	for _, pos := range positions[1:] {
		if pos == current[1]+1 {
			current[1] = pos
			continue
		}
		blocks = append(blocks, current)
		current = Block{pos, pos}
	}
	blocks = append(blocks, current)
	return blocks
}
