package tui

import (
	"bytes"
	"strings"
	"testing"

	"eduxctl/pkg/history"
	"eduxctl/pkg/resolve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinePrompter(input string) (*LinePrompter, *bytes.Buffer, *history.History) {
	out := &bytes.Buffer{}
	h := &history.History{}
	return NewLinePrompter(strings.NewReader(input), out, h), out, h
}

func TestLinePrompterAcceptsValidOption(t *testing.T) {
	p, out, h := newLinePrompter("BI-3DT\n")

	answer, err := p.Ask("What course do you want?", []string{"BI-3DT", "MI-PAA"})
	require.NoError(t, err)
	assert.Equal(t, "BI-3DT", answer)
	assert.Contains(t, out.String(), "(BI-3DT/MI-PAA)")
	assert.Equal(t, []string{"BI-3DT"}, h.Lines())
}

func TestLinePrompterRepromptsOnInvalid(t *testing.T) {
	p, out, _ := newLinePrompter("\nBI-3DX\nMI-PAA\n")

	answer, err := p.Ask("What course do you want?", []string{"BI-3DT", "MI-PAA"})
	require.NoError(t, err)
	assert.Equal(t, "MI-PAA", answer)
	assert.Equal(t, 1, strings.Count(out.String(), "Invalid option!"), "an empty line is asked again silently")
	assert.Contains(t, out.String(), "Did you mean BI-3DT?")
}

func TestLinePrompterFreeform(t *testing.T) {
	p, _, _ := newLinePrompter("anything at all\n")

	answer, err := p.Ask("What course do you want?", nil)
	require.NoError(t, err)
	assert.Equal(t, "anything at all", answer)
}

func TestLinePrompterListsCompletions(t *testing.T) {
	options := []string{"a1", "a2", "b1", "b2", "c1", "c2", "d1", "d2", "D3"}
	p, out, _ := newLinePrompter("d?\nd2\n")

	answer, err := p.Ask("What column do you want?", options)
	require.NoError(t, err)
	assert.Equal(t, "d2", answer)

	text := out.String()
	assert.Contains(t, text, "type a prefix and ? to list options")
	assert.NotContains(t, text, "(a1/")
	assert.Contains(t, text, "d1  d2  D3")
}

func TestLinePrompterEndOfInput(t *testing.T) {
	p, out, _ := newLinePrompter("")

	_, err := p.Ask("What class do you want?", []string{"exam"})
	require.ErrorIs(t, err, resolve.ErrAborted)
	assert.True(t, strings.HasSuffix(out.String(), "exit\n"))
}

func TestLinePrompterLastLineWithoutNewline(t *testing.T) {
	p, _, _ := newLinePrompter("exam")

	answer, err := p.Ask("What class do you want?", []string{"exam", "tutorials"})
	require.NoError(t, err)
	assert.Equal(t, "exam", answer)
}

func TestLinePrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"maybe\nno\n", false},
	}

	for _, tt := range tests {
		p, _, _ := newLinePrompter(tt.input)
		got, err := p.Confirm("Submit?")
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	p, _, _ := newLinePrompter("")
	_, err := p.Confirm("Submit?")
	assert.ErrorIs(t, err, resolve.ErrAborted)
}

func TestLinePrompterSatisfiesResolver(t *testing.T) {
	p, out, _ := newLinePrompter("tutorials\n")

	r := resolve.New([]string{"BI-3DT"}, p)
	course, err := r.Select(resolve.KindCourse, []string{"BI-3DT", "MI-PAA"})
	require.NoError(t, err)
	assert.Equal(t, "BI-3DT", course)

	class, err := r.Select(resolve.KindClass, []string{"exam", "tutorials"})
	require.NoError(t, err)
	assert.Equal(t, "tutorials", class)
	assert.Contains(t, out.String(), "What class do you want? (exam/tutorials):")
}

func TestLinePrompterAskSecretSkipsHistory(t *testing.T) {
	p, _, h := newLinePrompter("\ns3cr3t\n")

	value, err := p.AskSecret("Cookie value")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", value)
	assert.Empty(t, h.Lines())
}

func TestLinePrompterListsOptionsSorted(t *testing.T) {
	p, out, _ := newLinePrompter("tutorials\n")

	_, err := p.Ask("What class do you want?", []string{"tutorials", "Exam", "bonus"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "(bonus/Exam/tutorials)")
}

func TestLinePrompterEmptyLineIsSilent(t *testing.T) {
	p, out, _ := newLinePrompter("\n\nexam\n")

	answer, err := p.Ask("What class do you want?", []string{"exam", "tutorials"})
	require.NoError(t, err)
	assert.Equal(t, "exam", answer)
	assert.NotContains(t, out.String(), "Invalid option!")
	assert.Equal(t, 3, strings.Count(out.String(), "What class do you want?"))
}
