// Package codec implements the line-oriented text format used to exchange
// sample sequences with the vv-dsp dump tools.
//
// Real sequences are written one value per line; complex sequences are
// written as two comma-separated fields (real,imag) per line. Values are
// formatted with 8 significant digits, which round-trips the reduced
// (float32) exchange precision.
package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// exchangeDigits is the number of significant digits written per value.
const exchangeDigits = 8

// complexFields is the field count of a complex exchange line.
const complexFields = 2

// ParseError reports an exchange line that does not match the expected
// format. A malformed oracle response is itself a correctness bug under
// test, so decoding never skips bad lines silently.
type ParseError struct {
	Line int    // 1-based line number within the payload
	Text string // offending line, as received
	Err  error  // underlying conversion error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exchange line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("exchange line %d %q: malformed", e.Line, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteReal writes a real sequence, one value per line.
func WriteReal(w io.Writer, x []float64) error {
	bw := bufio.NewWriter(w)
	for _, v := range x {
		if _, err := fmt.Fprintf(bw, "%.*g\n", exchangeDigits, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteComplex writes a complex sequence as real,imag pairs, one per line.
func WriteComplex(w io.Writer, x []complex128) error {
	bw := bufio.NewWriter(w)
	for _, v := range x {
		if _, err := fmt.Fprintf(bw, "%.*g,%.*g\n",
			exchangeDigits, real(v), exchangeDigits, imag(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseReal decodes a real sequence from output lines. Empty lines are
// ignored; any other deviation from one-float-per-line is a *ParseError.
func ParseReal(lines []string) ([]float64, error) {
	out := make([]float64, 0, len(lines))
	for i, ln := range lines {
		s := strings.TrimSpace(ln)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: ln, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseComplex decodes a complex sequence from real,imag output lines.
func ParseComplex(lines []string) ([]complex128, error) {
	out := make([]complex128, 0, len(lines))
	for i, ln := range lines {
		s := strings.TrimSpace(ln)
		if s == "" {
			continue
		}
		fields := strings.Split(s, ",")
		if len(fields) != complexFields {
			return nil, &ParseError{Line: i + 1, Text: ln}
		}
		re, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: ln, Err: err}
		}
		im, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: ln, Err: err}
		}
		out = append(out, complex(re, im))
	}
	return out, nil
}

// SaveReal writes a real sequence to a file, creating or truncating it.
func SaveReal(path string, x []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteReal(f, x); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// SaveComplex writes a complex sequence to a file.
func SaveComplex(path string, x []complex128) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteComplex(f, x); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
