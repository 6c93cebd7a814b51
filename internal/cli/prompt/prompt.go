// Package prompt provides interactive bookmark name resolution.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

// SelectionMarker prefixes an input that picks a listed candidate by index.
const SelectionMarker = "#"

// Prompter reads a bookmark name from the user.
type Prompter struct {
	input   *bufio.Reader
	output  io.Writer
	history *History
}

// Option configures the Prompter.
type Option func(*Prompter)

// WithHistory attaches a history object; accepted names are recorded in it.
func WithHistory(h *History) Option {
	return func(p *Prompter) {
		p.history = h
	}
}

// New creates a Prompter reading from input and writing to output. The
// input is buffered once, so sequential prompts on the same Prompter do
// not lose read-ahead between calls.
func New(input io.Reader, output io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		input:  bufio.NewReader(input),
		output: output,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReadName presents the candidates and resolves the user's answer to a name.
//
// Candidates are sorted and numbered; an answer of the form "#k" picks the
// k-th one (and is taken literally when k matches nothing). An answer
// beginning with the context sigil is a full contextual name as typed. Any
// other answer becomes "@<context> <answer>". An empty answer returns def
// unmodified when one was supplied and cancels otherwise, as do EOF and
// interrupts: cancellation commits nothing.
func (p *Prompter) ReadName(label string, candidates []string, context, def string) (string, error) {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	p.display(sorted)

	if def != "" {
		fmt.Fprintf(p.output, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.output, "%s: ", label)
	}

	line, err := p.input.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", domain.ErrPromptCancelled.WithCause(err)
	}
	if err == io.EOF && line == "" {
		fmt.Fprintln(p.output)
		return "", domain.ErrPromptCancelled
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		if def == "" {
			return "", domain.ErrPromptCancelled
		}
		if p.history != nil {
			p.history.Add(def)
		}
		return def, nil
	}

	name := p.resolve(answer, sorted, context)
	if p.history != nil {
		p.history.Add(name)
	}
	return name, nil
}

func (p *Prompter) resolve(answer string, sorted []string, context string) string {
	if rest, ok := strings.CutPrefix(answer, SelectionMarker); ok {
		if idx, err := strconv.Atoi(rest); err == nil && idx >= 1 && idx <= len(sorted) {
			return sorted[idx-1]
		}
		return answer
	}

	if strings.HasPrefix(answer, domain.ContextSigil) {
		return answer
	}

	return domain.Name{Context: context, Tag: answer}.String()
}

// display lists the numbered candidates, context column first.
func (p *Prompter) display(sorted []string) {
	if len(sorted) == 0 {
		return
	}

	width := 0
	for _, name := range sorted {
		if prefix, _ := domain.SplitDisplay(name); len(prefix) > width {
			width = len(prefix)
		}
	}

	for i, name := range sorted {
		prefix, suffix := domain.SplitDisplay(name)
		fmt.Fprintf(p.output, "%s%-3d %-*s %s\n", SelectionMarker, i+1, width, prefix, suffix)
	}
}
