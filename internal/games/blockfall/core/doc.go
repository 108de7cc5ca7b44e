// Package core implements the deterministic falling-block game logic.
//
// Every type here is a value: grids, pieces, generators and states are never
// modified in place, and Step is a pure function from (input, state) to the
// next state. The package has no I/O and no notion of time; callers decide
// when to step.
package core
