package domain

import "strings"

// DefaultMinTokens is the number of leading single-character tokens a filename
// needs before it is treated as indexed
const DefaultMinTokens = 1

// Convention parses and generates index-prefixed filenames
// e.g., code "AB" with name "test.pdf" <-> "A B test.pdf"
//
// A name that itself begins with single-character tokens ("A B C notes.pdf")
// cannot be told apart from a longer index; Parse always takes the longest run.
type Convention struct {
	MinTokens int
}

// DefaultConvention is the convention used when nothing is configured
var DefaultConvention = Convention{MinTokens: DefaultMinTokens}

// NewConvention returns a convention requiring at least minTokens index characters.
// Values below 1 fall back to DefaultMinTokens.
func NewConvention(minTokens int) Convention {
	if minTokens < 1 {
		minTokens = DefaultMinTokens
	}
	return Convention{MinTokens: minTokens}
}

// Parse splits a filename into its index code and the remaining name.
// Bare filenames return an empty index and the whole filename as name.
func (c Convention) Parse(filename string) (index, name string) {
	var sb strings.Builder
	i := 0
	for i+1 < len(filename) && isAlnum(filename[i]) && filename[i+1] == ' ' {
		sb.WriteByte(filename[i])
		i += 2
	}

	minTokens := c.MinTokens
	if minTokens < 1 {
		minTokens = DefaultMinTokens
	}
	if sb.Len() < minTokens {
		return "", filename
	}
	return sb.String(), filename[i:]
}

// ParseName splits a filename using DefaultConvention
func ParseName(filename string) (index, name string) {
	return DefaultConvention.Parse(filename)
}

// FormatIndex inserts a single space between every character of code
// e.g., "A1B" -> "A 1 B"
func FormatIndex(code string) string {
	if len(code) < 2 {
		return code
	}
	var sb strings.Builder
	sb.Grow(len(code)*2 - 1)
	for i := 0; i < len(code); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(code[i])
	}
	return sb.String()
}

// JoinName builds the managed filename for an index and a name.
// An empty index yields the bare name.
func JoinName(index, name string) string {
	if index == "" {
		return name
	}
	return FormatIndex(index) + " " + name
}

// ValidCode reports whether s is a non-empty ASCII alphanumeric code
func ValidCode(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlnum(s[i]) {
			return false
		}
	}
	return true
}

// ValidIndex reports whether s may be used as a file index (empty means bare)
func ValidIndex(s string) bool {
	return s == "" || ValidCode(s)
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
