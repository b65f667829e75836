package parser

import (
	"strconv"
	"strings"
)

// Statement is the interface implemented by all SQL statement AST nodes.
// The unexported marker method restricts implementations to this package.
type Statement interface {
	statementNode()
	String() string
}

// Expr is the interface implemented by all expression AST nodes.
// String renders the canonical SQL form of the expression; binary and
// unary operations are fully parenthesized so the rendering makes the
// parsed shape visible.
type Expr interface {
	exprNode()
	String() string
}

// ---------------------------------------------------------------------------
// Column / table definitions
// ---------------------------------------------------------------------------

// DataTypeKind enumerates the column types of this dialect.
type DataTypeKind int

const (
	TypeInt DataTypeKind = iota
	TypeBool
	TypeVarchar
)

// DataType is a column type; Length is set for VARCHAR only.
type DataType struct {
	Kind   DataTypeKind
	Length int
}

func (d DataType) String() string {
	switch d.Kind {
	case TypeInt:
		return "INT"
	case TypeBool:
		return "BOOL"
	case TypeVarchar:
		return "VARCHAR(" + strconv.Itoa(d.Length) + ")"
	}
	return "UNKNOWN"
}

// ColumnDef describes a column in a CREATE TABLE statement.
type ColumnDef struct {
	Name       string
	Type       DataType
	PrimaryKey bool
	NotNull    bool
	Check      Expr // nil when no CHECK constraint
}

func (c ColumnDef) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(c.Type.String())
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Check != nil {
		b.WriteString(" CHECK ")
		b.WriteString(c.Check.String())
	}
	return b.String()
}

// OrderByClause represents a single column in an ORDER BY clause.
type OrderByClause struct {
	Column string
	Desc   bool // true = DESC, false = ASC (default)
}

func (o OrderByClause) String() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// SelectStmt: SELECT <exprs> FROM <table> [WHERE <expr>] [ORDER BY ...] ;
type SelectStmt struct {
	Columns []Expr // StarExpr for *, otherwise arbitrary expressions
	Table   string
	Where   Expr            // nil when no WHERE clause
	OrderBy []OrderByClause // nil when no ORDER BY clause
}

// CreateTableStmt: CREATE TABLE <name> (<col> <type> [constraints], ...) ;
type CreateTableStmt struct {
	Table   string
	Columns []ColumnDef
}

func (*SelectStmt) statementNode()      {}
func (*CreateTableStmt) statementNode() {}

func (s *SelectStmt) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, col := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col.String())
	}
	b.WriteString(" FROM ")
	b.WriteString(s.Table)
	if s.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(s.Where.String())
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range s.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(o.String())
		}
	}
	b.WriteByte(';')
	return b.String()
}

func (s *CreateTableStmt) String() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(s.Table)
	b.WriteString(" (")
	for i, col := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col.String())
	}
	b.WriteString(");")
	return b.String()
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// ColumnRef references a column by name.
type ColumnRef struct {
	Name string
}

// StarExpr represents * in a SELECT column list.
type StarExpr struct{}

// IntegerLit is an integer literal.
type IntegerLit struct {
	Value int64
}

// FloatLit is a decimal literal such as 3.14.
type FloatLit struct {
	Value float64
}

// StringLit is a quoted string literal.
type StringLit struct {
	Value string
}

// BoolLit is TRUE or FALSE.
type BoolLit struct {
	Value bool
}

// UnaryExpr is a prefix operation. Op is "-", "+", or "NOT".
type UnaryExpr struct {
	Op   string
	Expr Expr
}

// BinaryExpr is a binary operation: left op right.
// Op is one of: "=", "<>", "<", ">", "<=", ">=", "+", "-", "*", "/", "AND", "OR".
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*ColumnRef) exprNode()  {}
func (*StarExpr) exprNode()   {}
func (*IntegerLit) exprNode() {}
func (*FloatLit) exprNode()   {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}

func (e *ColumnRef) String() string { return e.Name }
func (*StarExpr) String() string    { return "*" }

func (e *IntegerLit) String() string { return strconv.FormatInt(e.Value, 10) }
func (e *FloatLit) String() string   { return strconv.FormatFloat(e.Value, 'g', -1, 64) }
func (e *StringLit) String() string  { return "'" + e.Value + "'" }

func (e *BoolLit) String() string {
	if e.Value {
		return "TRUE"
	}
	return "FALSE"
}

func (e *UnaryExpr) String() string {
	if e.Op == "NOT" {
		return "(NOT " + e.Expr.String() + ")"
	}
	return "(" + e.Op + e.Expr.String() + ")"
}

func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}
