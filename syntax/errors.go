package syntax

import "fmt"

// LexerError reports a problem found while scanning the raw pattern:
// unterminated delimiters, invalid escapes, unknown flag characters.
type LexerError struct {
	Begin   int
	End     int
	Message string
}

func (e LexerError) Error() string { return e.Message }

// ParserError reports a structural or semantic problem found while
// building the AST.
type ParserError struct {
	Begin   int
	End     int
	Message string
}

func (e ParserError) Error() string { return e.Message }

func throwLexf(begin, end int, format string, args ...any) {
	panic(LexerError{Begin: begin, End: end, Message: fmt.Sprintf(format, args...)})
}

func throwParsef(begin, end int, format string, args ...any) {
	panic(ParserError{Begin: begin, End: end, Message: fmt.Sprintf(format, args...)})
}
