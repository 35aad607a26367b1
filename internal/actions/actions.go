// Package actions parses the short interactive commands used by the
// discovery and graduation workflows. A line is either "q", quitting the
// loop, or an index spec plus a single action letter, e.g. "2d" or "1-3i".
package actions

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrQuit signals that the user ended the interactive loop.
var ErrQuit = errors.New("quit requested")

// Action identifies one capability letter.
type Action rune

// Capability letters shared across workflows.
const (
	ActionDownload Action = 'd'
	ActionIgnore   Action = 'i'
	ActionOpen     Action = 'o'
	ActionStage    Action = 's'
	ActionShelve   Action = 's'
	ActionPlay     Action = 'p'
	ActionDelete   Action = 'x'
)

// CapabilitySet holds the action letters a workflow accepts.
type CapabilitySet map[Action]string

// Capability sets per workflow. The description strings feed the prompt help.
var (
	DiscoveryCapabilities = CapabilitySet{
		ActionDownload: "download",
		ActionIgnore:   "ignore",
		ActionOpen:     "open",
	}
	StagingCapabilities = CapabilitySet{
		ActionStage:  "stage",
		ActionPlay:   "play",
		ActionDelete: "delete",
	}
	ShelvingCapabilities = CapabilitySet{
		ActionShelve: "shelve",
		ActionPlay:   "play",
		ActionDelete: "delete",
	}
)

// Letters returns the set's action letters in alphabetical order, for
// stable help text.
func (c CapabilitySet) Letters() []string {
	letters := make([]string, 0, len(c))
	for action := range c {
		letters = append(letters, string(action))
	}
	sort.Strings(letters)
	return letters
}

// Help renders the set as "d=download, i=ignore, o=open".
func (c CapabilitySet) Help() string {
	parts := make([]string, 0, len(c))
	for _, letter := range c.Letters() {
		parts = append(parts, letter+"="+c[Action(letter[0])])
	}
	return strings.Join(parts, ", ")
}

// Command is one parsed instruction covering the inclusive index range
// [Low, High]. The caller applies Action to every index in ascending order.
type Command struct {
	Low    int
	High   int
	Action Action
}

// Indices returns the covered 1-based indices in ascending order.
func (c Command) Indices() []int {
	indices := make([]int, 0, c.High-c.Low+1)
	for i := c.Low; i <= c.High; i++ {
		indices = append(indices, i)
	}
	return indices
}

// ParseError reports a rejected input line with a human-readable reason.
// The interactive loop renders it and re-prompts; nothing is mutated.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read %q: %s", e.Input, e.Reason)
}

func parseErr(input, format string, args ...any) error {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// Parse interprets one input line against a numbered list of maxIndex
// items. It returns ErrQuit for "q" in any case, a ParseError for any
// malformed or out-of-range input, and a Command otherwise.
func Parse(line string, maxIndex int, caps CapabilitySet) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if strings.EqualFold(trimmed, "q") {
		return Command{}, ErrQuit
	}
	if trimmed == "" {
		return Command{}, parseErr(line, "empty input")
	}

	lowered := strings.ToLower(trimmed)
	last := rune(lowered[len(lowered)-1])
	if last >= '0' && last <= '9' {
		return Command{}, parseErr(line, "missing action letter (%s)", caps.Help())
	}
	action := Action(last)
	if _, ok := caps[action]; !ok {
		return Command{}, parseErr(line, "unknown action %q (%s)", string(action), caps.Help())
	}

	spec := strings.TrimSpace(lowered[:len(lowered)-1])
	if spec == "" {
		return Command{}, parseErr(line, "missing index before action %q", string(action))
	}

	low, high, err := parseIndexSpec(line, spec)
	if err != nil {
		return Command{}, err
	}
	if low < 1 || high > maxIndex {
		return Command{}, parseErr(line, "index out of range 1-%d", maxIndex)
	}
	return Command{Low: low, High: high, Action: action}, nil
}

func parseIndexSpec(input, spec string) (int, int, error) {
	if before, after, found := strings.Cut(spec, "-"); found {
		low, err := strconv.Atoi(strings.TrimSpace(before))
		if err != nil {
			return 0, 0, parseErr(input, "malformed range start %q", strings.TrimSpace(before))
		}
		high, err := strconv.Atoi(strings.TrimSpace(after))
		if err != nil {
			return 0, 0, parseErr(input, "malformed range end %q", strings.TrimSpace(after))
		}
		if low > high {
			return 0, 0, parseErr(input, "range start %d exceeds end %d", low, high)
		}
		return low, high, nil
	}
	index, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, parseErr(input, "malformed index %q", spec)
	}
	return index, index, nil
}
