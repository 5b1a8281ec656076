// Package tokens estimates the size of markdown text.
package tokens

import (
	"strings"
	"unicode/utf8"
)

const charsPerToken = 4

// Counter counts tokens in text.
type Counter interface {
	Count(text string) int
}

// EstimatingCounter approximates token count as one token per 4 characters.
type EstimatingCounter struct{}

func NewEstimatingCounter() *EstimatingCounter {
	return &EstimatingCounter{}
}

// Count implements Counter.
func (*EstimatingCounter) Count(text string) int {
	return Estimate(text)
}

// Estimate returns the character count of text divided by 4, rounded down.
// Characters are code points, so multibyte text is not inflated.
func Estimate(text string) int {
	return utf8.RuneCountInString(text) / charsPerToken
}

// Words counts whitespace-separated words.
func Words(text string) int {
	return len(strings.Fields(text))
}

// Lines counts newline characters plus one, so "" is one line.
func Lines(text string) int {
	return strings.Count(text, "\n") + 1
}

// Counts bundles the three size measures of a text.
type Counts struct {
	Tokens int
	Words  int
	Lines  int
}

// Measure returns all three measures of text, with tokens counted by c.
func Measure(c Counter, text string) Counts {
	return Counts{Tokens: c.Count(text), Words: Words(text), Lines: Lines(text)}
}

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{Tokens: c.Tokens + o.Tokens, Words: c.Words + o.Words, Lines: c.Lines + o.Lines}
}
