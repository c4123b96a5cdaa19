// Package gen produces judge inputs from a seed.
package gen

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"

	"gridmerge/internal/game"
)

type Input struct {
	Seed   int64
	Values []int
	Slots  []int
}

// Generate draws every tile value uniformly from 1..3. The slot for turn t
// is uniform over the cells still empty, 1..100-t. The last slot is the
// sentinel and is always 1.
func Generate(seed int64) Input {
	r := rand.New(rand.NewSource(seed))
	in := Input{
		Seed:   seed,
		Values: make([]int, game.NumCells),
		Slots:  make([]int, game.NumCells),
	}
	for i := range in.Values {
		in.Values[i] = 1 + r.Intn(game.MaxValue)
	}
	for t := range in.Slots {
		in.Slots[t] = 1 + r.Intn(game.NumCells-t)
	}
	in.Slots[game.NumCells-1] = 1
	return in
}

// WriteTo writes the values on one line and then one slot per line.
func (in Input) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for i, v := range in.Values {
		sep := " "
		if i == len(in.Values)-1 {
			sep = "\n"
		}
		k, err := fmt.Fprintf(bw, "%d%s", v, sep)
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	for _, s := range in.Slots {
		k, err := fmt.Fprintf(bw, "%d\n", s)
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
