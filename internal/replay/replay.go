// Package replay encodes input scripts and runs them deterministically
// through the blockfall state machine.
//
// A script is a string with one character per step:
//
//	L  shift left      R  shift right
//	C  rotate cw       A  rotate ccw
//	U  hard drop       .  gravity only
//
// Whitespace is ignored so long scripts can be wrapped.
package replay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
)

var (
	// ErrUnknownInput is returned when a script contains an unknown character.
	ErrUnknownInput = errors.New("replay: unknown input")
	// ErrUnknownRule is returned when a rules string names an unknown rule.
	ErrUnknownRule = errors.New("replay: unknown rule")
)

// Parse decodes a script into inputs.
func Parse(script string) ([]bfcore.Input, error) {
	inputs := make([]bfcore.Input, 0, len(script))
	for i, r := range script {
		if unicode.IsSpace(r) {
			continue
		}
		in, ok := bfcore.InputFromRune(r)
		if !ok {
			return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownInput, r, i)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// Encode is the inverse of Parse.
func Encode(inputs []bfcore.Input) string {
	var b strings.Builder
	b.Grow(len(inputs))
	for _, in := range inputs {
		b.WriteRune(in.Rune())
	}
	return b.String()
}

const classicRules = "classic"

// FormatRules renders rules as a comma separated list, e.g. "death,lock=1,lines".
// The classic ruleset renders as "classic".
func FormatRules(r bfcore.Rules) string {
	var parts []string
	if r.DeathOnBlockedSpawn {
		parts = append(parts, "death")
	}
	if r.LockDelay > 0 {
		parts = append(parts, "lock="+strconv.Itoa(r.LockDelay))
	}
	if r.ClearLines {
		parts = append(parts, "lines")
	}
	if len(parts) == 0 {
		return classicRules
	}
	return strings.Join(parts, ",")
}

// ParseRules is the inverse of FormatRules. An empty string is classic.
func ParseRules(s string) (bfcore.Rules, error) {
	var r bfcore.Rules
	s = strings.TrimSpace(s)
	if s == "" || s == classicRules {
		return r, nil
	}
	for _, part := range strings.Split(s, ",") {
		name, value, hasValue := strings.Cut(strings.TrimSpace(part), "=")
		switch {
		case name == "death" && !hasValue:
			r.DeathOnBlockedSpawn = true
		case name == "lines" && !hasValue:
			r.ClearLines = true
		case name == "lock" && hasValue:
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return bfcore.Rules{}, fmt.Errorf("%w: bad lock delay %q", ErrUnknownRule, value)
			}
			r.LockDelay = n
		default:
			return bfcore.Rules{}, fmt.Errorf("%w %q", ErrUnknownRule, part)
		}
	}
	return r, nil
}

// Result is the outcome of running a script.
type Result struct {
	Final bfcore.State
	// Steps is the number of inputs consumed.
	Steps int
	// DiedAt is the 1-based step that killed the player, or 0.
	DiedAt int
	// Placed is the number of pieces locked into the world.
	Placed int
}

// Run steps a fresh state through every input.
func Run(rules bfcore.Rules, seed uint32, inputs []bfcore.Input) Result {
	return RunFrom(bfcore.NewState(rules, seed), inputs)
}

// RunFrom steps s through every input. Inputs after death are still
// consumed and leave the state unchanged.
func RunFrom(s bfcore.State, inputs []bfcore.Input) Result {
	res := Result{Final: s}
	for _, in := range inputs {
		next := bfcore.Step(in, res.Final)
		res.Steps++
		if next.Generator != res.Final.Generator {
			res.Placed++
		}
		if next.IsDead() && !res.Final.IsDead() {
			res.DiedAt = res.Steps
		}
		res.Final = next
	}
	return res
}

// Status formats the score line for a state.
func Status(s bfcore.State) string {
	status := fmt.Sprintf("Score: %d", s.Score)
	if s.IsDead() {
		status += " -- You Are Dead"
	}
	return status
}

// Format renders the composite of s followed by its status line.
func Format(s bfcore.State) string {
	return bfcore.Composite(s).String() + "\n" + Status(s)
}
