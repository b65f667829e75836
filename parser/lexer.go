package parser

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes a SQL input string. The dialect has no comments and
// no escape sequences inside string literals; both single and double
// quotes delimit strings.
type Lexer struct {
	input string
	pos   int  // byte offset of the current rune
	width int  // byte width of the current rune
	ch    rune // current character, 0 at end of input
	line  int  // 1-based line of the current rune
	col   int  // 1-based column of the current rune
}

// NewLexer creates a lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 1}
	if len(input) > 0 {
		l.ch, l.width = utf8.DecodeRuneInString(input)
	}
	return l
}

// Tokenize scans the entire input and returns the token sequence,
// always terminated by a TokenEOF sentinel. The first lexical error
// aborts the scan and is returned without any tokens.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else if l.ch != 0 {
		l.col++
	}
	l.pos += l.width
	if l.pos >= len(l.input) {
		l.ch = 0
		l.width = 0
	} else {
		l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	}
}

func (l *Lexer) peek() rune {
	next := l.pos + l.width
	if next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[next:])
	return r
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	start := l.position()

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Pos: start}, nil
	case l.ch == '(':
		l.advance()
		return Token{Type: TokenLParen, Literal: "(", Pos: start}, nil
	case l.ch == ')':
		l.advance()
		return Token{Type: TokenRParen, Literal: ")", Pos: start}, nil
	case l.ch == ',':
		l.advance()
		return Token{Type: TokenComma, Literal: ",", Pos: start}, nil
	case l.ch == ';':
		l.advance()
		return Token{Type: TokenSemicolon, Literal: ";", Pos: start}, nil
	case l.ch == '.':
		l.advance()
		return Token{Type: TokenDot, Literal: ".", Pos: start}, nil
	case l.ch == '*':
		l.advance()
		return Token{Type: TokenStar, Literal: "*", Pos: start}, nil
	case l.ch == '/':
		l.advance()
		return Token{Type: TokenSlash, Literal: "/", Pos: start}, nil
	case l.ch == '+':
		l.advance()
		return Token{Type: TokenPlus, Literal: "+", Pos: start}, nil
	case l.ch == '-':
		l.advance()
		return Token{Type: TokenMinus, Literal: "-", Pos: start}, nil
	case l.ch == '=':
		l.advance()
		return Token{Type: TokenEq, Literal: "=", Pos: start}, nil
	case l.ch == '!':
		if l.peek() == '=' {
			l.advance()
			l.advance()
			return Token{Type: TokenNotEq, Literal: "!=", Pos: start}, nil
		}
		return Token{}, &LexError{Kind: LexUnexpectedChar, Pos: start, Char: '!'}
	case l.ch == '<':
		if l.peek() == '=' {
			l.advance()
			l.advance()
			return Token{Type: TokenLtEq, Literal: "<=", Pos: start}, nil
		}
		if l.peek() == '>' {
			l.advance()
			l.advance()
			return Token{Type: TokenNotEq, Literal: "<>", Pos: start}, nil
		}
		l.advance()
		return Token{Type: TokenLt, Literal: "<", Pos: start}, nil
	case l.ch == '>':
		if l.peek() == '=' {
			l.advance()
			l.advance()
			return Token{Type: TokenGtEq, Literal: ">=", Pos: start}, nil
		}
		l.advance()
		return Token{Type: TokenGt, Literal: ">", Pos: start}, nil
	case l.ch == '\'' || l.ch == '"':
		return l.readString(start, l.ch)
	case isDigit(l.ch):
		return l.readNumber(start)
	case isLetter(l.ch) || l.ch == '_':
		return l.readIdentOrKeyword(start), nil
	default:
		return Token{}, &LexError{Kind: LexUnexpectedChar, Pos: start, Char: l.ch}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.advance()
	}
}

func (l *Lexer) readString(start Position, quote rune) (Token, error) {
	l.advance() // skip opening quote
	begin := l.pos
	for l.ch != 0 && l.ch != quote {
		l.advance()
	}
	if l.ch == 0 {
		return Token{}, &LexError{Kind: LexUnterminatedString, Pos: start, Char: quote}
	}
	str := l.input[begin:l.pos]
	l.advance() // skip closing quote
	return Token{Type: TokenString, Literal: str, Pos: start}, nil
}

func (l *Lexer) readNumber(start Position) (Token, error) {
	begin := l.pos
	isFloat := false

	for isDigit(l.ch) {
		l.advance()
	}

	// Decimal point must be followed by at least one digit.
	if l.ch == '.' {
		if !isDigit(l.peek()) {
			return Token{}, &LexError{
				Kind:   LexInvalidNumber,
				Pos:    start,
				Lexeme: l.input[begin:l.pos] + ".",
			}
		}
		isFloat = true
		l.advance() // consume '.'
		for isDigit(l.ch) {
			l.advance()
		}
	}

	// A second decimal point makes the whole run malformed.
	if l.ch == '.' {
		return Token{}, &LexError{
			Kind:   LexInvalidNumber,
			Pos:    start,
			Lexeme: l.input[begin:l.pos] + ".",
		}
	}

	lit := l.input[begin:l.pos]
	if isFloat {
		if _, err := strconv.ParseFloat(lit, 64); err != nil {
			return Token{}, &LexError{Kind: LexInvalidNumber, Pos: start, Lexeme: lit}
		}
	} else {
		if _, err := strconv.ParseInt(lit, 10, 64); err != nil {
			return Token{}, &LexError{Kind: LexInvalidNumber, Pos: start, Lexeme: lit}
		}
	}
	return Token{Type: TokenNumber, Literal: lit, Pos: start}, nil
}

func (l *Lexer) readIdentOrKeyword(start Position) Token {
	begin := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.advance()
	}
	literal := l.input[begin:l.pos]
	return Token{Type: LookupKeyword(literal), Literal: literal, Pos: start}
}

func isDigit(ch rune) bool  { return ch >= '0' && ch <= '9' }
func isLetter(ch rune) bool { return unicode.IsLetter(ch) }
