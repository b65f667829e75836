package parser

import "strings"

// TokenType identifies the kind of token produced by the lexer.
type TokenType int

const (
	// Special tokens.
	TokenEOF TokenType = iota

	// Literals.
	TokenIdent  // identifier (column name, table name)
	TokenNumber // integer or decimal literal
	TokenString // quoted string literal

	// Operators.
	TokenEq    // =
	TokenNotEq // <> or !=
	TokenLt    // <
	TokenGt    // >
	TokenLtEq  // <=
	TokenGtEq  // >=
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // * (also the SELECT wildcard)
	TokenSlash // /

	// Punctuation.
	TokenLParen    // (
	TokenRParen    // )
	TokenComma     // ,
	TokenSemicolon // ;
	TokenDot       // .

	// Keywords.
	TokenSelect
	TokenCreate
	TokenTable
	TokenFrom
	TokenWhere
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenInt
	TokenBool
	TokenVarchar
	TokenPrimary
	TokenKey
	TokenNot
	TokenNull
	TokenAnd
	TokenOr
	TokenTrue
	TokenFalse
	TokenCheck
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenIdent:     "IDENT",
	TokenNumber:    "NUMBER",
	TokenString:    "STRING",
	TokenEq:        "=",
	TokenNotEq:     "<>",
	TokenLt:        "<",
	TokenGt:        ">",
	TokenLtEq:      "<=",
	TokenGtEq:      ">=",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenComma:     ",",
	TokenSemicolon: ";",
	TokenDot:       ".",
	TokenSelect:    "SELECT",
	TokenCreate:    "CREATE",
	TokenTable:     "TABLE",
	TokenFrom:      "FROM",
	TokenWhere:     "WHERE",
	TokenOrder:     "ORDER",
	TokenBy:        "BY",
	TokenAsc:       "ASC",
	TokenDesc:      "DESC",
	TokenInt:       "INT",
	TokenBool:      "BOOL",
	TokenVarchar:   "VARCHAR",
	TokenPrimary:   "PRIMARY",
	TokenKey:       "KEY",
	TokenNot:       "NOT",
	TokenNull:      "NULL",
	TokenAnd:       "AND",
	TokenOr:        "OR",
	TokenTrue:      "TRUE",
	TokenFalse:     "FALSE",
	TokenCheck:     "CHECK",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Position locates a token in the source text. Line and Column are
// 1-based and count runes; Offset is the byte offset in the input.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Token is a single lexical unit produced by the lexer. Tokens are
// values and are never mutated after creation.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

var keywords = map[string]TokenType{
	"SELECT":  TokenSelect,
	"CREATE":  TokenCreate,
	"TABLE":   TokenTable,
	"FROM":    TokenFrom,
	"WHERE":   TokenWhere,
	"ORDER":   TokenOrder,
	"BY":      TokenBy,
	"ASC":     TokenAsc,
	"DESC":    TokenDesc,
	"INT":     TokenInt,
	"BOOL":    TokenBool,
	"VARCHAR": TokenVarchar,
	"PRIMARY": TokenPrimary,
	"KEY":     TokenKey,
	"NOT":     TokenNot,
	"NULL":    TokenNull,
	"AND":     TokenAnd,
	"OR":      TokenOr,
	"TRUE":    TokenTrue,
	"FALSE":   TokenFalse,
	"CHECK":   TokenCheck,
}

// LookupKeyword returns the keyword token type for ident, or TokenIdent
// if it is not a keyword. Matching is case-insensitive.
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return TokenIdent
}
