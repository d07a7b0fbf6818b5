// Package srs implements the SM-2 spaced-repetition scheduler together with
// the due-set predicates and the card and deck metrics derived from
// scheduling state. Everything here is pure computation over values the
// caller has already loaded; time and randomness are always injected.
package srs
