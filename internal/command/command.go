// Package command is the thin collaborator between the raw stdin byte
// stream and the monitor's mutation API: it tokenizes each line into a
// verb and up to three double-quoted arguments, dispatches to the
// matching Store method, and writes report output to the configured
// writer. This is the "command-line lexer" spec.md treats as an external
// collaborator, given a concrete shape here since a runnable repo needs
// one.
package command

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/relmon/relmon/internal/monitor"
)

// maxLineBytes mirrors the original C source's MAX_LINE_LENGTH; lines
// longer than this are not hard-truncated, they are discarded whole by
// newOversizedLineTolerantSplit like any other malformed line (spec §7
// category 2), with a 4x allowance over the documented bound before that
// discard kicks in.
const maxLineBytes = 200

const (
	verbAddEntity   = "addent"
	verbDelEntity   = "delent"
	verbAddRelation = "addrel"
	verbDelRelation = "delrel"
	verbReport      = "report"
	verbEnd         = "end"
)

// Dispatcher reads commands from an io.Reader, applies them to a
// monitor.Store, and writes report() output to an io.Writer.
type Dispatcher struct {
	store *monitor.Store
	out   *bufio.Writer
}

// New constructs a Dispatcher over store, buffering writes to out.
func New(store *monitor.Store, out io.Writer) *Dispatcher {
	return &Dispatcher{store: store, out: bufio.NewWriter(out)}
}

// Run reads lines from in until EOF or an "end" command, dispatching each
// recognized one. Unknown verbs, malformed argument shapes, and lines
// beyond the configured length are all silently ignored, per spec §7
// category 2 — the loop itself never fails on bad input. Scanner.Err()
// can therefore never return bufio.ErrTooLong here: newOversizedLineTolerantSplit
// discards an overlong line itself instead of letting the Scanner grow its
// buffer past the cap and fail the whole stream.
func (d *Dispatcher) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, maxLineBytes*4), maxLineBytes*4)
	scanner.Split(newOversizedLineTolerantSplit(maxLineBytes * 4))

	for scanner.Scan() {
		if d.dispatch(scanner.Text()) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read command stream: %w", err)
	}
	return d.out.Flush()
}

// dispatch applies one line and reports whether the loop should stop
// (i.e. the line was "end").
func (d *Dispatcher) dispatch(line string) (stop bool) {
	verb, args, ok := tokenize(line)
	if !ok {
		return false
	}

	switch verb {
	case verbAddEntity:
		if len(args) == 1 && args[0] != "" {
			d.store.AddEntity(args[0])
		}
	case verbDelEntity:
		if len(args) == 1 && args[0] != "" {
			d.store.DelEntity(args[0])
		}
	case verbAddRelation:
		if len(args) == 3 && nonEmpty(args) {
			d.store.AddRelation(args[0], args[1], args[2])
		}
	case verbDelRelation:
		if len(args) == 3 && nonEmpty(args) {
			d.store.DelRelation(args[0], args[1], args[2])
		}
	case verbReport:
		if len(args) == 0 {
			fmt.Fprint(d.out, d.store.Report())
		}
	case verbEnd:
		return true
	}
	return false
}

func nonEmpty(args []string) bool {
	for _, a := range args {
		if a == "" {
			return false
		}
	}
	return true
}

// newOversizedLineTolerantSplit returns a bufio.SplitFunc that behaves like
// bufio.ScanLines, except a raw line longer than maxLine is never handed to
// the Scanner as a token and never produces bufio.ErrTooLong: it is simply
// dropped, and scanning resumes at the following newline. This keeps an
// overlong line a category-2 malformed/ignorable input (spec §7) rather
// than a fatal read error that would abort the rest of the command stream.
func newOversizedLineTolerantSplit(maxLine int) bufio.SplitFunc {
	skipping := false
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if skipping {
			if i := bytes.IndexByte(data, '\n'); i >= 0 {
				skipping = false
				return i + 1, nil, nil
			}
			if atEOF {
				skipping = false
				return len(data), nil, nil
			}
			return len(data), nil, nil
		}

		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line := dropCR(data[0:i])
			if len(line) > maxLine {
				return i + 1, nil, nil
			}
			return i + 1, line, nil
		}

		if atEOF {
			if len(data) == 0 {
				return 0, nil, nil
			}
			if len(data) > maxLine {
				return len(data), nil, nil
			}
			return len(data), dropCR(data), nil
		}

		if len(data) >= maxLine {
			// Buffered as much as the Scanner will ever hand us without a
			// newline in sight; switch to skip mode now rather than asking
			// for one more byte, which would hit the Scanner's own
			// buffer-full check and fail the scan with bufio.ErrTooLong.
			skipping = true
			return len(data), nil, nil
		}
		return 0, nil, nil
	}
}

func dropCR(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[:len(data)-1]
	}
	return data
}

// tokenize splits line into a verb and its arguments. The verb (the first
// whitespace-delimited field) is taken as-is; every argument after it
// must be wrapped in double quotes, which are stripped. A line with more
// than 4 fields, or any argument field not shaped like "...", is invalid
// and the whole line is discarded — matching the original tokenizer's
// "any malformed token invalidates the whole line" behavior.
func tokenize(line string) (verb string, args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields) > 4 {
		return "", nil, false
	}

	verb = fields[0]
	rest := fields[1:]
	args = make([]string, 0, len(rest))
	for _, tok := range rest {
		if len(tok) < 2 || tok[0] != '"' || tok[len(tok)-1] != '"' {
			return "", nil, false
		}
		args = append(args, tok[1:len(tok)-1])
	}
	return verb, args, true
}
