// Package trace renders agent step traces for terminal consumption. A Printer
// consumes a finite event stream (or a completed event slice) and writes the
// steps in order: reasoning text, tool calls with their arguments, tool
// observations and the final answer. When streaming is enabled, partial text
// fragments are written incrementally as they arrive.
package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/lumostack/agentkit/core"
)

// Options configures a Printer.
type Options struct {
	// Writer receives the rendered trace. Defaults to os.Stdout.
	Writer io.Writer
	// ShowObservations includes tool observation payloads in the trace.
	ShowObservations bool
}

// Printer writes a human-readable step trace of a run. It is purely
// side-effecting and keeps just enough state to stitch streamed fragments
// into a single line. Not safe for concurrent use.
type Printer struct {
	w                io.Writer
	showObservations bool

	// streaming tracks whether the previous write was a partial fragment so
	// the completed turn is not printed twice.
	streaming bool
}

// NewPrinter constructs a Printer with optional overrides.
func NewPrinter(optFns ...func(o *Options)) *Printer {
	opts := Options{
		Writer:           os.Stdout,
		ShowObservations: true,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Printer{w: opts.Writer, showObservations: opts.ShowObservations}
}

// Consume drains the event and error channels of a run, printing each step as
// it arrives, and returns the terminal error if one occurred.
func (p *Printer) Consume(eventsCh <-chan core.Event, errorsCh <-chan error) error {
	var terminal error
	for eventsCh != nil || errorsCh != nil {
		select {
		case ev, ok := <-eventsCh:
			if !ok {
				eventsCh = nil
				continue
			}
			p.Print(ev)
		case err, ok := <-errorsCh:
			if !ok {
				errorsCh = nil
				continue
			}
			if err != nil {
				terminal = err
			}
		}
	}
	p.flush()
	return terminal
}

// PrintAll renders a completed event slice in order.
func (p *Printer) PrintAll(events []core.Event) {
	for _, ev := range events {
		p.Print(ev)
	}
	p.flush()
}

// Print renders a single event.
func (p *Printer) Print(ev core.Event) {
	if ev.ErrorMessage != nil {
		p.flush()
		fmt.Fprintf(p.w, "[error] %s\n", *ev.ErrorMessage)
		return
	}
	if ev.Content == nil {
		return
	}

	if ev.IsPartial() {
		p.printFragment(ev)
		return
	}

	for _, part := range ev.Content.Parts {
		switch pt := part.(type) {
		case core.TextPart:
			p.printText(ev, pt.Text)
		case core.FunctionCallPart:
			p.flush()
			args := pt.FunctionCall.Arguments
			if args == "" {
				args = "{}"
			}
			fmt.Fprintf(p.w, "[tool] %s %s\n", pt.FunctionCall.Name, args)
		case core.FunctionResponsePart:
			p.flush()
			p.printObservation(pt.FunctionResponse)
		}
	}
}

func (p *Printer) printFragment(ev core.Event) {
	for _, part := range ev.Content.Parts {
		if pt, ok := part.(core.TextPart); ok && pt.Text != "" {
			fmt.Fprint(p.w, pt.Text)
			p.streaming = true
		}
	}
}

func (p *Printer) printText(ev core.Event, text string) {
	if text == "" {
		return
	}
	// A turn that streamed already wrote its text fragment by fragment; the
	// completed event only terminates the line.
	if p.streaming {
		fmt.Fprintln(p.w)
		p.streaming = false
		return
	}
	switch ev.Content.Role {
	case "user":
		fmt.Fprintf(p.w, "[user] %s\n", text)
	default:
		fmt.Fprintln(p.w, text)
	}
}

func (p *Printer) printObservation(fr core.FunctionResponse) {
	if fr.Error != "" {
		fmt.Fprintf(p.w, "[observation] %s failed: %s\n", fr.Name, fr.Error)
		return
	}
	if !p.showObservations {
		return
	}
	fmt.Fprintf(p.w, "[observation] %s: %v\n", fr.Name, fr.Response)
}

// flush terminates a dangling streamed line before a different step kind is
// written.
func (p *Printer) flush() {
	if p.streaming {
		fmt.Fprintln(p.w)
		p.streaming = false
	}
}
