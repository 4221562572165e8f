package state

import "errors"

// ErrEmptyInput is returned by Read when the input queue is exhausted.
var ErrEmptyInput = errors.New("state: read from empty input queue")

// IO holds the two finite integer sequences threaded through execution:
// the untouched suffix of the program's input, and the growing,
// append-only output log (spec.md §3's input_queue/output_log).
type IO struct {
	input  []int64
	output []int64
}

// NewIO seeds an IO with the given input sequence and an empty output
// log.
func NewIO(input []int64) *IO {
	in := make([]int64, len(input))
	copy(in, input)
	return &IO{input: in}
}

// Read pops the head of the input queue (invariant P3: the queue only
// shrinks by removing its front element, exclusively via Read).
func (io *IO) Read() (int64, error) {
	if len(io.input) == 0 {
		return 0, ErrEmptyInput
	}
	v := io.input[0]
	io.input = io.input[1:]
	return v, nil
}

// Write appends v to the output log (invariant P2: output only grows).
func (io *IO) Write(v int64) {
	io.output = append(io.output, v)
}

// Output returns a copy of the output log accumulated so far.
func (io *IO) Output() []int64 {
	out := make([]int64, len(io.output))
	copy(out, io.output)
	return out
}

// InputRemaining returns a copy of the yet-unconsumed input.
func (io *IO) InputRemaining() []int64 {
	out := make([]int64, len(io.input))
	copy(out, io.input)
	return out
}
