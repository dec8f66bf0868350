// Package shuffle implements the split and alternate-merge card shuffle.
//
// Each pass reverses the input, splits it at the middle and then deals
// small blocks of one to four cards alternately from the left and right
// halves. The result keeps some local block order from each half, which is
// how the game has always felt; it is not a uniform permutation.
package shuffle

import "math"

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// MinRepeats is the smallest repeat count RepeatCount returns.
const MinRepeats = 3

// maxRepeats is the upper bound of each repeat-count draw.
const maxRepeats = 10

// Shuffle returns a shuffled copy of items; the input is not modified.
// times extra passes are applied after the first.
func Shuffle[T any](items []T, times int, src Source) []T {
	out := pass(items, src)
	for ; times > 0; times-- {
		out = pass(out, src)
	}
	return out
}

func pass[T any](items []T, src Source) []T {
	n := len(items)
	work := make([]T, n)
	for i, it := range items {
		work[n-1-i] = it
	}

	middle := n / 2
	left, right := 0, middle
	out := make([]T, 0, n)
	for left < middle || right < n {
		take := blockSize(src, middle-left)
		out = append(out, work[left:left+take]...)
		left += take

		take = blockSize(src, n-right)
		out = append(out, work[right:right+take]...)
		right += take
	}
	return out
}

// blockSize draws ceil(random*4) capped at remaining. A draw of exactly zero
// is bumped to one so a pile with cards left always makes progress.
func blockSize(src Source, remaining int) int {
	size := int(math.Ceil(src.Float64() * 4))
	if size < 1 {
		size = 1
	}
	return min(size, remaining)
}

// RepeatCount draws ceil(random*10) until the draw is at least MinRepeats.
func RepeatCount(src Source) int {
	for {
		n := int(math.Ceil(src.Float64() * maxRepeats))
		if n >= MinRepeats {
			return n
		}
	}
}
