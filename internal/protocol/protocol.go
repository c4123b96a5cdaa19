// Package protocol reads the judge's integer stream and writes direction
// tokens back to it.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gridmerge/internal/game"
)

var ErrMalformedInput = errors.New("malformed input")

type Reader struct {
	sc *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Reader{sc: sc}
}

// NextInt reads one whitespace-separated integer.
func (r *Reader) NextInt() (int, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return 0, fmt.Errorf("%w: unexpected end of input", ErrMalformedInput)
	}
	tok := r.sc.Text()
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: token %q is not an integer", ErrMalformedInput, tok)
	}
	return n, nil
}

// ReadValues reads the n planned tile values and checks they are in range.
func (r *Reader) ReadValues(n int) ([]int, error) {
	values := make([]int, n)
	for i := range values {
		v, err := r.NextInt()
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		if v < 1 || v > game.MaxValue {
			return nil, fmt.Errorf("%w: value %d at index %d", ErrMalformedInput, v, i)
		}
		values[i] = v
	}
	return values, nil
}

// Writer emits one direction per line and flushes after each, since the
// judge waits for a move before sending the next slot.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) WriteDirection(d game.Direction) error {
	if _, err := w.w.WriteString(d.String()); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}
