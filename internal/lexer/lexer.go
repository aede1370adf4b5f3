// Package lexer splits a partially typed command line into shell words.
//
// The line is usually cut at the cursor, so it may end inside a quoted span the
// user has not closed yet. ParseWords closes such a span itself instead of
// failing.
package lexer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrUnparseableCommand is returned when a line cannot be split into words even
// after a dangling quote has been closed.
var ErrUnparseableCommand = errors.New("unparseable command")

// QuotingState describes which kind of quote, if any, is left open at the end
// of a line.
type QuotingState int

const (
	Balanced QuotingState = iota
	UnbalancedSingleQuote
	UnbalancedDoubleQuote
)

func (s QuotingState) String() string {
	switch s {
	case Balanced:
		return "Balanced"
	case UnbalancedSingleQuote:
		return "UnbalancedSingleQuote"
	case UnbalancedDoubleQuote:
		return "UnbalancedDoubleQuote"
	default:
		return fmt.Sprintf("QuotingState(%d)", int(s))
	}
}

// closingQuote returns the character that rebalances the line.
func (s QuotingState) closingQuote() string {
	switch s {
	case UnbalancedSingleQuote:
		return "'"
	case UnbalancedDoubleQuote:
		return `"`
	default:
		return ""
	}
}

// GetQuotingState scans line once. A quote toggles its own balance only while
// the other kind is balanced, so the two can never be open at the same time.
func GetQuotingState(line string) QuotingState {
	singleBalanced, doubleBalanced := true, true
	for _, r := range line {
		switch {
		case r == '\'' && doubleBalanced:
			singleBalanced = !singleBalanced
		case r == '"' && singleBalanced:
			doubleBalanced = !doubleBalanced
		}
	}

	switch {
	case !singleBalanced:
		return UnbalancedSingleQuote
	case !doubleBalanced:
		return UnbalancedDoubleQuote
	default:
		return Balanced
	}
}

// ParseWords splits line into words with POSIX shell quoting rules and no
// expansion. A dangling quote is closed before splitting. When the line ends
// in an unquoted space the result carries a trailing empty word, standing for
// the word the cursor is about to start.
func ParseWords(line string) ([]string, error) {
	state := GetQuotingState(line)

	newWordStarted := false
	if state == Balanced {
		newWordStarted = endsWithUnescapedSpace(line)
	} else {
		line += state.closingQuote()
	}

	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnparseableCommand, err)
	}

	if newWordStarted {
		words = append(words, "")
	}
	return words, nil
}

// endsWithUnescapedSpace reports whether line ends in a space that separates
// words rather than one escaped with a backslash.
func endsWithUnescapedSpace(line string) bool {
	if !strings.HasSuffix(line, " ") {
		return false
	}
	rest := strings.TrimSuffix(line, " ")
	backslashes := len(rest) - len(strings.TrimRight(rest, `\`))
	return backslashes%2 == 0
}
