package game

import "fmt"

// Place writes value into the slot-th empty cell (1-based, row-major) and
// returns the index it landed on.
func (b *Board) Place(value, slot int) (int, error) {
	if value < 1 || value > MaxValue {
		return -1, fmt.Errorf("place %d: %w", value, ErrInvalidValue)
	}
	if slot < 1 {
		return -1, fmt.Errorf("slot %d: %w", slot, ErrSlotOutOfRange)
	}

	remaining := slot
	for i := range b.Cells {
		if b.Cells[i] != 0 {
			continue
		}
		remaining--
		if remaining == 0 {
			b.Cells[i] = value
			return i, nil
		}
	}
	return -1, fmt.Errorf("slot %d with %d empty cells: %w", slot, slot-remaining, ErrSlotOutOfRange)
}

// Apply slides every tile toward the edge named by d. Tiles keep their
// relative order and never combine. A tile already in place is not written.
func (b *Board) Apply(d Direction) {
	for line := 0; line < Size; line++ {
		insert := 0
		for step := 0; step < Size; step++ {
			from := d.index(line, step)
			if b.Cells[from] == 0 {
				continue
			}
			if step != insert {
				to := d.index(line, insert)
				b.Cells[to] = b.Cells[from]
				b.Cells[from] = 0
			}
			insert++
		}
	}
}

// index maps a position along a line to a cell index. step 0 is the edge
// the tiles slide toward.
func (d Direction) index(line, step int) int {
	switch d {
	case Forward:
		return step*Size + line
	case Backward:
		return (Size-1-step)*Size + line
	case Left:
		return line*Size + step
	default:
		return line*Size + Size - 1 - step
	}
}
