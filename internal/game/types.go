package game

import (
	"errors"
	"fmt"
)

const (
	Size     = 10
	NumCells = Size * Size
	MaxValue = 3
)

var (
	ErrSlotOutOfRange = errors.New("slot out of range")
	ErrInvalidValue   = errors.New("tile value out of range")
)

// Direction is a slide direction. The declaration order is the trial order
// used when several directions score the same.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

var Directions = [4]Direction{Forward, Backward, Left, Right}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "F"
	case Backward:
		return "B"
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Board is a 10x10 grid stored row-major. It is a plain value: assigning a
// Board copies every cell.
type Board struct {
	Cells [NumCells]int `json:"cells"`
}

func (b *Board) At(x, y int) int {
	return b.Cells[y*Size+x]
}

func (b *Board) Set(x, y, v int) {
	b.Cells[y*Size+x] = v
}

// Occupied returns the number of non-zero cells.
func (b *Board) Occupied() int {
	n := 0
	for _, v := range b.Cells {
		if v != 0 {
			n++
		}
	}
	return n
}

func (b *Board) Empty() int {
	return NumCells - b.Occupied()
}

// ValueSum returns the sum over tile values of (count of that value)^2.
func ValueSum(values []int) (int, error) {
	var count [MaxValue]int
	for i, v := range values {
		if v < 1 || v > MaxValue {
			return 0, fmt.Errorf("value %d at index %d: %w", v, i, ErrInvalidValue)
		}
		count[v-1]++
	}
	sum := 0
	for _, c := range count {
		sum += c * c
	}
	return sum, nil
}
