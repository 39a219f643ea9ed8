package resolve

import (
	"log/slog"

	"eduxctl/pkg/edux"
	"eduxctl/pkg/logger"
)

// State is a step of a single selection.
type State int

const (
	StateStart State = iota
	StatePromptFreeform
	StateAutoResolved
	StatePromptDisambiguate
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePromptFreeform:
		return "prompt-freeform"
	case StateAutoResolved:
		return "auto-resolved"
	case StatePromptDisambiguate:
		return "prompt-disambiguate"
	case StateResolved:
		return "resolved"
	}
	return "unknown"
}

// Kind names what is being selected; it only changes the wording.
type Kind struct {
	Question string
	Multiple string
}

var (
	KindCourse = Kind{Question: "What course do you want?", Multiple: "Found multiple possible courses."}
	KindClass  = Kind{Question: "What class do you want?", Multiple: "Found multiple possible classes."}
	KindColumn = Kind{Question: "What column do you want?", Multiple: "Found multiple possible columns."}
)

// Resolver turns leftover command line arguments into selections, asking the
// user only when the arguments do not pick exactly one candidate.
type Resolver struct {
	args     []string
	prompter Prompter
	log      *slog.Logger
}

// New creates a resolver over the given arguments. Duplicate arguments are dropped.
func New(args []string, p Prompter) *Resolver {
	seen := make(map[string]bool, len(args))
	var unique []string
	for _, a := range args {
		if !seen[a] {
			seen[a] = true
			unique = append(unique, a)
		}
	}
	return &Resolver{args: unique, prompter: p, log: logger.Nop()}
}

// WithLogger sets the logger used for tracing decisions.
func (r *Resolver) WithLogger(log *slog.Logger) *Resolver {
	r.log = log.With("module", "resolve")
	return r
}

// Remaining returns the arguments not consumed yet.
func (r *Resolver) Remaining() []string {
	return append([]string(nil), r.args...)
}

// Match compares each remaining argument case-insensitively against the
// candidates and returns the candidates hit, in argument order. When exactly
// one candidate is hit, the arguments that hit it are consumed so they cannot
// match a later selection.
func (r *Resolver) Match(candidates []string) []string {
	if len(candidates) == 1 {
		return append([]string(nil), candidates...)
	}

	byFold := make(map[string]string, len(candidates))
	for _, c := range candidates {
		if _, ok := byFold[fold(c)]; !ok {
			byFold[fold(c)] = c
		}
	}

	var matches []string
	seen := make(map[string]bool)
	hitBy := make(map[string][]int)
	for i, arg := range r.args {
		c, ok := byFold[fold(arg)]
		if !ok {
			continue
		}
		hitBy[c] = append(hitBy[c], i)
		if !seen[c] {
			seen[c] = true
			matches = append(matches, c)
		}
	}

	if len(matches) == 1 {
		r.consume(hitBy[matches[0]])
	}
	return matches
}

func (r *Resolver) consume(indexes []int) {
	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		drop[i] = true
	}
	kept := r.args[:0]
	for i, a := range r.args {
		if !drop[i] {
			kept = append(kept, a)
		}
	}
	r.args = kept
}

// Plan runs the START transition for one selection: it returns the next state
// and the options that state works with.
func (r *Resolver) Plan(candidates []string) (State, []string) {
	matches := r.Match(candidates)
	switch len(matches) {
	case 0:
		return StatePromptFreeform, candidates
	case 1:
		return StateAutoResolved, matches
	default:
		return StatePromptDisambiguate, matches
	}
}

// Select resolves one value out of candidates. With no candidates at all,
// any non-empty answer is accepted.
func (r *Resolver) Select(kind Kind, candidates []string) (string, error) {
	state, options := r.Plan(candidates)
	r.log.Debug("selection planned", "question", kind.Question, "state", state, "options", len(options))

	var answer string
	var err error
	switch state {
	case StateAutoResolved:
		answer = options[0]
	case StatePromptDisambiguate:
		r.prompter.Warn(kind.Multiple)
		answer, err = r.prompter.Ask(kind.Question, options)
	default:
		answer, err = r.prompter.Ask(kind.Question, options)
	}
	if err != nil {
		return "", err
	}

	r.log.Debug("selection resolved", "state", StateResolved, "value", answer)
	return answer, nil
}

// SelectPath walks the classification tree from the root, selecting one
// segment per level until it reaches a leaf.
func (r *Resolver) SelectPath(tree *edux.Node) ([]string, error) {
	if tree == nil || tree.IsLeaf() {
		return nil, edux.ErrEmptyTree
	}

	var path []string
	node := tree
	for !node.IsLeaf() {
		one, err := r.Select(KindClass, node.Names())
		if err != nil {
			return nil, err
		}
		child, ok := node.Child(one)
		if !ok {
			// Only reachable when a prompter returns something it was not offered
			return nil, ErrInvalidInput
		}
		path = append(path, one)
		node = child
	}
	return path, nil
}
