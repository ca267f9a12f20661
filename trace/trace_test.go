package trace

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/internal/testutil"
)

func newPrinter(buf *strings.Builder) *Printer {
	return NewPrinter(func(o *Options) { o.Writer = buf })
}

func TestPrinter_StepTraceOrder(t *testing.T) {
	events := []core.Event{
		testutil.NewEventBuilder().Author("user").UserText("where am I?").Build(),
		testutil.NewEventBuilder().FunctionCall("get_location", "{}").Build(),
		testutil.NewEventBuilder().FunctionResponse("fc-1", "get_location", "Your current location is: Raleigh, North Carolina, United States", nil).Build(),
		testutil.NewEventBuilder().AssistantText("You are in Raleigh.").Build(),
	}

	var buf strings.Builder
	newPrinter(&buf).PrintAll(events)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[user] where am I?", lines[0])
	assert.Equal(t, "[tool] get_location {}", lines[1])
	assert.Contains(t, lines[2], "[observation] get_location: Your current location is")
	assert.Equal(t, "You are in Raleigh.", lines[3])
}

func TestPrinter_StreamedFragmentsSingleLine(t *testing.T) {
	var buf strings.Builder
	p := newPrinter(&buf)

	for _, frag := range []string{"He", "llo", "!"} {
		p.Print(testutil.NewEventBuilder().AssistantText(frag).Partial(true).Build())
	}
	// The completed turn carries the full text but must not repeat it.
	p.Print(testutil.NewEventBuilder().AssistantText("Hello!").Build())
	p.flush()

	assert.Equal(t, "Hello!\n", buf.String())
}

func TestPrinter_ToolErrorObservation(t *testing.T) {
	var buf strings.Builder
	p := newPrinter(&buf)

	p.Print(testutil.NewEventBuilder().FunctionResponse(
		"fc-1", "web_search", nil, errors.New("missing API key"),
	).Build())

	assert.Equal(t, "[observation] web_search failed: missing API key\n", buf.String())
}

func TestPrinter_ErrorEvent(t *testing.T) {
	var buf strings.Builder
	newPrinter(&buf).Print(core.NewErrorEvent("r1", errors.New("exceeded max model calls: 5")))

	assert.Equal(t, "[error] exceeded max model calls: 5\n", buf.String())
}

func TestPrinter_Consume(t *testing.T) {
	eventsCh := make(chan core.Event, 2)
	errorsCh := make(chan error, 1)
	eventsCh <- testutil.NewEventBuilder().AssistantText("done").Build()
	close(eventsCh)
	errorsCh <- errors.New("boom")
	close(errorsCh)

	var buf strings.Builder
	err := newPrinter(&buf).Consume(eventsCh, errorsCh)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "done")
}
