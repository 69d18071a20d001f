// Package ferricalc implements the core of an interactive calculator:
// scanning, parsing, evaluation, and display formatting of statements in a
// small expression language over 256-bit floating-point reals.
//
// A statement is a single expression, a variable assignment like "x = 5",
// or a single-expression function definition like "f(x) = x^2". The result
// of the most recently committed statement is addressable as "ans".
// Evaluation can also run in a preview mode that leaves the session
// environment untouched, which hosts use to show a live result while the
// user is still typing.
package ferricalc
