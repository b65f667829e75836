package parser

import "fmt"

// LexErrorKind classifies tokenization failures.
type LexErrorKind int

const (
	LexUnexpectedChar LexErrorKind = iota
	LexUnterminatedString
	LexInvalidNumber
)

// LexError describes a tokenization failure with source position context.
// The first failure aborts the scan; no tokens are returned alongside it.
type LexError struct {
	Kind   LexErrorKind
	Pos    Position
	Char   rune   // the offending character (LexUnexpectedChar)
	Lexeme string // the offending run of characters, when one was collected
}

func (e *LexError) Error() string {
	switch e.Kind {
	case LexUnexpectedChar:
		return fmt.Sprintf("line %d, column %d: unexpected character %q", e.Pos.Line, e.Pos.Column, e.Char)
	case LexUnterminatedString:
		return fmt.Sprintf("line %d, column %d: unterminated string literal", e.Pos.Line, e.Pos.Column)
	case LexInvalidNumber:
		return fmt.Sprintf("line %d, column %d: invalid number %q", e.Pos.Line, e.Pos.Column, e.Lexeme)
	}
	return fmt.Sprintf("line %d, column %d: lex error", e.Pos.Line, e.Pos.Column)
}

// ParseErrorKind classifies parsing failures.
type ParseErrorKind int

const (
	ParseUnexpectedToken ParseErrorKind = iota
	ParseUnexpectedEOF
	ParseExpectedToken
	ParseUnknownStatement
	ParseTooDeeplyNested
)

// ParseError describes a parsing failure with source position context.
type ParseError struct {
	Kind     ParseErrorKind
	Pos      Position
	Expected string // what the parser required (ParseExpectedToken)
	Got      Token  // the token actually found
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseUnexpectedToken:
		return fmt.Sprintf("line %d, column %d: unexpected %s", e.Pos.Line, e.Pos.Column, describeToken(e.Got))
	case ParseUnexpectedEOF:
		return fmt.Sprintf("line %d, column %d: unexpected end of input", e.Pos.Line, e.Pos.Column)
	case ParseExpectedToken:
		return fmt.Sprintf("line %d, column %d: expected %s, got %s", e.Pos.Line, e.Pos.Column, e.Expected, describeToken(e.Got))
	case ParseUnknownStatement:
		return fmt.Sprintf("line %d, column %d: expected SELECT or CREATE, got %s", e.Pos.Line, e.Pos.Column, describeToken(e.Got))
	case ParseTooDeeplyNested:
		return fmt.Sprintf("line %d, column %d: expression nesting too deep", e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("line %d, column %d: parse error", e.Pos.Line, e.Pos.Column)
}

func describeToken(tok Token) string {
	if tok.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Literal)
}
