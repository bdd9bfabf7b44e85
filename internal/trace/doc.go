// Package trace defines the unit of visualisation: a Step is one discrete
// state in an algorithm's execution, and Steps is the ordered trace a player
// walks through.
//
//   - [Step]: elements, optional graph/tree snapshots, narration, pseudocode line
//   - [Status]: closed set of visual roles an element or node can take
//   - [Builder]: append-only accumulator that clones everything it is given
//
// # Ownership
//
// Steps never share backing arrays. [Builder.Push] deep-copies its argument,
// so generators may keep mutating their working buffers after recording a
// step. A finished trace is treated as immutable by every consumer.
package trace
