package shell

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"studentrecords/internal/model"
)

// Input reads validated values from a line-oriented source, re-prompting
// until the line is acceptable. Every reader returns io.EOF once the source
// is exhausted.
type Input struct {
	sc  *bufio.Scanner
	out io.Writer
}

func NewInput(in io.Reader, out io.Writer) *Input {
	return &Input{sc: bufio.NewScanner(in), out: out}
}

func (in *Input) line(prompt string) (string, error) {
	fmt.Fprint(in.out, prompt)
	if !in.sc.Scan() {
		if err := in.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(in.sc.Text()), nil
}

// Line returns the next trimmed line without validation.
func (in *Input) Line(prompt string) (string, error) {
	return in.line(prompt)
}

// Int reads an integer in [min, max].
func (in *Input) Int(prompt string, min, max int) (int, error) {
	for {
		s, err := in.line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintf(in.out, "Invalid input. Please enter a whole number between %d and %d.\n", min, max)
			continue
		}
		if n < min || n > max {
			fmt.Fprintf(in.out, "Value must be between %d and %d.\n", min, max)
			continue
		}
		return n, nil
	}
}

// Float reads a number in [min, max].
func (in *Input) Float(prompt string, min, max float64) (float64, error) {
	for {
		s, err := in.line(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			fmt.Fprintf(in.out, "Invalid input. Please enter a number between %g and %g.\n", min, max)
			continue
		}
		if f < min || f > max {
			fmt.Fprintf(in.out, "Value must be between %g and %g.\n", min, max)
			continue
		}
		return f, nil
	}
}

// Name reads a non-empty name of letters, spaces and hyphens.
func (in *Input) Name(prompt string) (string, error) {
	for {
		s, err := in.line(prompt)
		if err != nil {
			return "", err
		}
		if !model.ValidName(s) {
			fmt.Fprintf(in.out, "Invalid name. Use only letters, spaces and hyphens (max %d characters).\n", model.MaxNameLength)
			continue
		}
		return s, nil
	}
}
