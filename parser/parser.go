package parser

import (
	"strconv"
	"strings"
)

// maxExprDepth caps expression recursion so hostile nesting fails with
// ParseTooDeeplyNested instead of exhausting the goroutine stack.
const maxExprDepth = 200

// parser is the internal recursive-descent parser over a fixed token
// sequence with a single forward cursor. Use the exported Parse
// function as the public entry point.
type parser struct {
	tokens []Token
	pos    int
	depth  int
}

// Parse tokenizes input and parses the single SQL statement it
// contains, including the terminating semicolon. On failure the first
// error encountered is returned; no partial AST accompanies an error.
// Parse holds no state between calls and is safe to call concurrently.
func Parse(input string) (Statement, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if tok := p.cur(); tok.Type != TokenEOF {
		return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: tok.Pos, Got: tok}
	}
	return stmt, nil
}

// ParseExpression tokenizes input and parses it as a single expression,
// requiring the whole input to be consumed.
func ParseExpression(input string) (Expr, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseExpression(lowestPower)
	if err != nil {
		return nil, err
	}
	if tok := p.cur(); tok.Type != TokenEOF {
		return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: tok.Pos, Got: tok}
	}
	return expr, nil
}

// -------------------------------------------------------------------------
// Helpers
// -------------------------------------------------------------------------

// cur never runs off the slice: Tokenize always terminates the sequence
// with an EOF sentinel and next refuses to advance past it.
func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() {
	if p.tokens[p.pos].Type != TokenEOF {
		p.pos++
	}
}

func (p *parser) expect(t TokenType) (Token, error) {
	tok := p.cur()
	if tok.Type != t {
		return tok, &ParseError{Kind: ParseExpectedToken, Pos: tok.Pos, Expected: t.String(), Got: tok}
	}
	p.next()
	return tok, nil
}

// -------------------------------------------------------------------------
// Statement parsing
// -------------------------------------------------------------------------

func (p *parser) parseStatement() (Statement, error) {
	switch tok := p.cur(); tok.Type {
	case TokenSelect:
		return p.parseSelect()
	case TokenCreate:
		return p.parseCreateTable()
	case TokenEOF:
		return nil, &ParseError{Kind: ParseUnexpectedEOF, Pos: tok.Pos, Got: tok}
	default:
		return nil, &ParseError{Kind: ParseUnknownStatement, Pos: tok.Pos, Got: tok}
	}
}

func (p *parser) parseSelect() (*SelectStmt, error) {
	p.next() // skip SELECT

	var columns []Expr
	for {
		if p.cur().Type == TokenStar {
			columns = append(columns, &StarExpr{})
			p.next()
		} else {
			expr, err := p.parseExpression(lowestPower)
			if err != nil {
				return nil, err
			}
			columns = append(columns, expr)
		}
		if p.cur().Type != TokenComma {
			break
		}
		p.next() // skip comma
	}

	if _, err := p.expect(TokenFrom); err != nil {
		return nil, err
	}
	table, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	var where Expr
	if p.cur().Type == TokenWhere {
		p.next()
		where, err = p.parseExpression(lowestPower)
		if err != nil {
			return nil, err
		}
	}

	// ORDER BY col [ASC|DESC] [, col [ASC|DESC], ...]
	var orderBy []OrderByClause
	if p.cur().Type == TokenOrder {
		p.next()
		if _, err := p.expect(TokenBy); err != nil {
			return nil, err
		}
		for {
			col, err := p.expect(TokenIdent)
			if err != nil {
				return nil, err
			}
			clause := OrderByClause{Column: col.Literal}
			switch p.cur().Type {
			case TokenDesc:
				clause.Desc = true
				p.next()
			case TokenAsc:
				p.next()
			}
			orderBy = append(orderBy, clause)
			if p.cur().Type != TokenComma {
				break
			}
			p.next() // skip comma
		}
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &SelectStmt{
		Columns: columns,
		Table:   table.Literal,
		Where:   where,
		OrderBy: orderBy,
	}, nil
}

func (p *parser) parseCreateTable() (*CreateTableStmt, error) {
	p.next() // skip CREATE
	if _, err := p.expect(TokenTable); err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var columns []ColumnDef
	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		if p.cur().Type != TokenComma {
			break
		}
		p.next() // skip comma
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &CreateTableStmt{Table: name.Literal, Columns: columns}, nil
}

func (p *parser) parseColumnDef() (ColumnDef, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return ColumnDef{}, err
	}

	var dataType DataType
	switch tok := p.cur(); tok.Type {
	case TokenInt:
		dataType = DataType{Kind: TypeInt}
		p.next()
	case TokenBool:
		dataType = DataType{Kind: TypeBool}
		p.next()
	case TokenVarchar:
		p.next()
		if _, err := p.expect(TokenLParen); err != nil {
			return ColumnDef{}, err
		}
		lenTok, err := p.expect(TokenNumber)
		if err != nil {
			return ColumnDef{}, err
		}
		length, convErr := strconv.Atoi(lenTok.Literal)
		if convErr != nil {
			return ColumnDef{}, &ParseError{
				Kind:     ParseExpectedToken,
				Pos:      lenTok.Pos,
				Expected: "integer VARCHAR length",
				Got:      lenTok,
			}
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return ColumnDef{}, err
		}
		dataType = DataType{Kind: TypeVarchar, Length: length}
	default:
		return ColumnDef{}, &ParseError{
			Kind:     ParseExpectedToken,
			Pos:      tok.Pos,
			Expected: "data type (INT, BOOL, or VARCHAR)",
			Got:      tok,
		}
	}

	col := ColumnDef{Name: name.Literal, Type: dataType}

	// Zero or more constraints: PRIMARY KEY, NOT NULL, CHECK (expr).
	for {
		switch p.cur().Type {
		case TokenPrimary:
			p.next()
			if _, err := p.expect(TokenKey); err != nil {
				return ColumnDef{}, err
			}
			col.PrimaryKey = true
		case TokenNot:
			p.next()
			if _, err := p.expect(TokenNull); err != nil {
				return ColumnDef{}, err
			}
			col.NotNull = true
		case TokenCheck:
			p.next()
			if _, err := p.expect(TokenLParen); err != nil {
				return ColumnDef{}, err
			}
			expr, err := p.parseExpression(lowestPower)
			if err != nil {
				return ColumnDef{}, err
			}
			if _, err := p.expect(TokenRParen); err != nil {
				return ColumnDef{}, err
			}
			col.Check = expr
		default:
			return col, nil
		}
	}
}

// -------------------------------------------------------------------------
// Expression parsing (Pratt)
// -------------------------------------------------------------------------

const (
	lowestPower = 0
	unaryPower  = 13 // prefix -, +, NOT bind tighter than any binary operator
)

// bindingPower encodes an infix operator's precedence; asymmetric left
// and right values encode associativity.
type bindingPower struct {
	left  int
	right int
}

// infixPowers is the fixed precedence table. All operators in this
// dialect are left-associative, so each uses (n, n+1): once the right
// operand is parsed at power n+1, another operator of the same level
// (left power n) no longer qualifies and the tree folds leftward.
var infixPowers = map[TokenType]bindingPower{
	TokenOr:    {1, 2},
	TokenAnd:   {3, 4},
	TokenEq:    {5, 6},
	TokenNotEq: {5, 6},
	TokenLt:    {7, 8},
	TokenGt:    {7, 8},
	TokenLtEq:  {7, 8},
	TokenGtEq:  {7, 8},
	TokenPlus:  {9, 10},
	TokenMinus: {9, 10},
	TokenStar:  {11, 12},
	TokenSlash: {11, 12},
}

// parseExpression parses a primary as the left-hand side, then folds in
// infix operators for as long as their left binding power qualifies
// against minPower.
func (p *parser) parseExpression(minPower int) (Expr, error) {
	if p.depth++; p.depth > maxExprDepth {
		p.depth--
		tok := p.cur()
		return nil, &ParseError{Kind: ParseTooDeeplyNested, Pos: tok.Pos, Got: tok}
	}
	defer func() { p.depth-- }()

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.cur()
		power, ok := infixPowers[tok.Type]
		if !ok || power.left < minPower {
			return left, nil
		}
		p.next()
		right, err := p.parseExpression(power.right)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: tok.Type.String(), Right: right}
	}
}

func (p *parser) parsePrefix() (Expr, error) {
	switch tok := p.cur(); tok.Type {
	case TokenNumber:
		p.next()
		if strings.Contains(tok.Literal, ".") {
			val, err := strconv.ParseFloat(tok.Literal, 64)
			if err != nil {
				return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: tok.Pos, Got: tok}
			}
			return &FloatLit{Value: val}, nil
		}
		val, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: tok.Pos, Got: tok}
		}
		return &IntegerLit{Value: val}, nil
	case TokenString:
		p.next()
		return &StringLit{Value: tok.Literal}, nil
	case TokenIdent:
		p.next()
		return &ColumnRef{Name: tok.Literal}, nil
	case TokenTrue:
		p.next()
		return &BoolLit{Value: true}, nil
	case TokenFalse:
		p.next()
		return &BoolLit{Value: false}, nil
	case TokenMinus, TokenPlus, TokenNot:
		p.next()
		operand, err := p.parseExpression(unaryPower)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: tok.Type.String(), Expr: operand}, nil
	case TokenLParen:
		p.next()
		expr, err := p.parseExpression(lowestPower)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenEOF:
		return nil, &ParseError{Kind: ParseUnexpectedEOF, Pos: tok.Pos, Got: tok}
	default:
		return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: tok.Pos, Got: tok}
	}
}
