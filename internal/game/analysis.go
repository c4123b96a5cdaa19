package game

import "math"

// Offset is a neighbor displacement.
type Offset struct {
	DX, DY int
}

// NeighborOrder is the order the region labeler inspects neighbors in:
// left, right, up, down. Scores depend on it.
var NeighborOrder = [4]Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func neighborIndex(x, y int, o Offset) (int, bool) {
	nx, ny := x+o.DX, y+o.DY
	if nx < 0 || nx >= Size || ny < 0 || ny >= Size {
		return 0, false
	}
	return ny*Size + nx, true
}

// label runs the single-pass region labeler.
//
// A cell takes the id of a labeled same-valued neighbor, or a fresh id, and
// then stamps its id onto every same-valued neighbor. Stamping does not move
// cells that were counted under the neighbor's previous id, so a region may
// be split across several ids.
func (b *Board) label() (ids [NumCells]int, sizes []int) {
	next := 1
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			i := y*Size + x
			value := b.Cells[i]
			if value == 0 {
				continue
			}

			if ids[i] == 0 {
				for _, o := range NeighborOrder {
					n, ok := neighborIndex(x, y, o)
					if ok && b.Cells[n] == value && ids[n] != 0 {
						ids[i] = ids[n]
					}
				}
				if ids[i] == 0 {
					ids[i] = next
					next++
					sizes = append(sizes, 0)
				}
			}

			region := ids[i]
			for _, o := range NeighborOrder {
				n, ok := neighborIndex(x, y, o)
				if ok && b.Cells[n] == value {
					ids[n] = region
				}
			}

			sizes[ids[i]-1]++
		}
	}
	return ids, sizes
}

// Regions returns region sizes indexed by region id - 1, as counted by the
// labeler used in Score.
func (b *Board) Regions() []int {
	_, sizes := b.label()
	return sizes
}

// Score returns round(1e6 * sum(size^2) / valueSum) over the labeler's
// regions. The board is not modified.
func (b *Board) Score(valueSum int) int {
	return normalize(b.Regions(), valueSum)
}

// Components returns the sizes of the true 4-connected same-value
// components, in order of their first cell.
func (b *Board) Components() []int {
	var seen [NumCells]bool
	var sizes []int
	stack := make([]int, 0, NumCells)

	for start, value := range b.Cells {
		if value == 0 || seen[start] {
			continue
		}
		size := 0
		seen[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			x, y := i%Size, i/Size
			for _, o := range NeighborOrder {
				n, ok := neighborIndex(x, y, o)
				if ok && !seen[n] && b.Cells[n] == value {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		sizes = append(sizes, size)
	}
	return sizes
}

// ExactScore is Score computed over true connected components. The engine
// never decides on it; it is what a judge reports for a finished board.
func (b *Board) ExactScore(valueSum int) int {
	return normalize(b.Components(), valueSum)
}

func normalize(sizes []int, valueSum int) int {
	if valueSum <= 0 {
		return 0
	}
	sum := 0
	for _, s := range sizes {
		sum += s * s
	}
	return int(math.Round(1e6 * (float64(sum) / float64(valueSum))))
}
