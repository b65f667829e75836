package parser

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mustParse(t *testing.T, input string) Statement {
	t.Helper()
	stmt, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return stmt
}

func parseErr(t *testing.T, input string) *ParseError {
	t.Helper()
	_, err := Parse(input)
	if err == nil {
		t.Fatalf("Parse(%q): expected error", input)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(%q): error is %T (%v), want *ParseError", input, err, err)
	}
	return perr
}

func assertColumnRef(t *testing.T, expr Expr, name string) {
	t.Helper()
	ref, ok := expr.(*ColumnRef)
	if !ok {
		t.Fatalf("got %T, want *ColumnRef", expr)
	}
	if ref.Name != name {
		t.Fatalf("column = %q, want %q", ref.Name, name)
	}
}

func assertIntLit(t *testing.T, expr Expr, want int64) {
	t.Helper()
	lit, ok := expr.(*IntegerLit)
	if !ok {
		t.Fatalf("got %T, want *IntegerLit", expr)
	}
	if lit.Value != want {
		t.Fatalf("value = %d, want %d", lit.Value, want)
	}
}

func assertBinary(t *testing.T, expr Expr, op string) *BinaryExpr {
	t.Helper()
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("got %T, want *BinaryExpr", expr)
	}
	if bin.Op != op {
		t.Fatalf("op = %q, want %q", bin.Op, op)
	}
	return bin
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func TestParseExpression_Precedence(t *testing.T) {
	// The parenthesized rendering makes the parsed shape visible.
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"1 + 2 < 3 + 4", "((1 + 2) < (3 + 4))"},
		{"a = 1 OR b = 2 AND c = 3", "((a = 1) OR ((b = 2) AND (c = 3)))"},
		{"a < b = TRUE", "((a < b) = TRUE)"},
		{"-a * b", "((-a) * b)"},
		{"-a - b", "((-a) - b)"},
		{"+5 * 2", "((+5) * 2)"},
		{"NOT a = 1", "((NOT a) = 1)"},
		{"NOT TRUE OR FALSE", "((NOT TRUE) OR FALSE)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"-(a + b)", "(-(a + b))"},
		{"a != b", "(a <> b)"},
		{"a <> b", "(a <> b)"},
		{"price * 0.5", "(price * 0.5)"},
		{"name = 'bob'", "(name = 'bob')"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := ParseExpression(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if got := expr.String(); got != tt.want {
				t.Fatalf("shape = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseExpression_Tree(t *testing.T) {
	expr, err := ParseExpression("1 + 2 * 3")
	if err != nil {
		t.Fatal(err)
	}
	add := assertBinary(t, expr, "+")
	assertIntLit(t, add.Left, 1)
	mul := assertBinary(t, add.Right, "*")
	assertIntLit(t, mul.Left, 2)
	assertIntLit(t, mul.Right, 3)
}

func TestParseExpression_Errors(t *testing.T) {
	tests := []struct {
		input string
		kind  ParseErrorKind
	}{
		{"(1 + 2", ParseExpectedToken},
		{"1 +", ParseUnexpectedEOF},
		{"", ParseUnexpectedEOF},
		{"* 3", ParseUnexpectedToken},
		{", 1", ParseUnexpectedToken},
		{"1 2", ParseUnexpectedToken}, // trailing token after a full expression
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseExpression(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error is %T, want *ParseError", err)
			}
			if perr.Kind != tt.kind {
				t.Fatalf("kind = %d, want %d (%v)", perr.Kind, tt.kind, err)
			}
		})
	}
}

func TestParseExpression_MissingParenNamesToken(t *testing.T) {
	_, err := ParseExpression("(1 + 2")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if perr.Expected != ")" {
		t.Fatalf("expected = %q, want %q", perr.Expected, ")")
	}
}

func TestParseExpression_DepthCap(t *testing.T) {
	depth := maxExprDepth + 10
	input := strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	_, err := ParseExpression(input)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T (%v), want *ParseError", err, err)
	}
	if perr.Kind != ParseTooDeeplyNested {
		t.Fatalf("kind = %d, want ParseTooDeeplyNested", perr.Kind)
	}
}

// ---------------------------------------------------------------------------
// SELECT
// ---------------------------------------------------------------------------

func TestParse_Select(t *testing.T) {
	stmt := mustParse(t, "SELECT name, age FROM users WHERE age > 18;")
	sel, ok := stmt.(*SelectStmt)
	if !ok {
		t.Fatalf("got %T, want *SelectStmt", stmt)
	}
	if sel.Table != "users" {
		t.Errorf("table = %q, want %q", sel.Table, "users")
	}
	if len(sel.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(sel.Columns))
	}
	assertColumnRef(t, sel.Columns[0], "name")
	assertColumnRef(t, sel.Columns[1], "age")
	gt := assertBinary(t, sel.Where, ">")
	assertColumnRef(t, gt.Left, "age")
	assertIntLit(t, gt.Right, 18)
	if sel.OrderBy != nil {
		t.Errorf("order by = %v, want none", sel.OrderBy)
	}
}

func TestParse_SelectStarOrderBy(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM t ORDER BY x DESC;")
	sel := stmt.(*SelectStmt)
	if len(sel.Columns) != 1 {
		t.Fatalf("columns = %d, want 1", len(sel.Columns))
	}
	if _, ok := sel.Columns[0].(*StarExpr); !ok {
		t.Fatalf("column[0] = %T, want *StarExpr", sel.Columns[0])
	}
	if sel.Where != nil {
		t.Errorf("where = %v, want nil", sel.Where)
	}
	want := []OrderByClause{{Column: "x", Desc: true}}
	if len(sel.OrderBy) != 1 || sel.OrderBy[0] != want[0] {
		t.Fatalf("order by = %v, want %v", sel.OrderBy, want)
	}
}

func TestParse_SelectOrderByDefaultsAscending(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM t ORDER BY a, b ASC, c DESC;")
	sel := stmt.(*SelectStmt)
	want := []OrderByClause{
		{Column: "a", Desc: false},
		{Column: "b", Desc: false},
		{Column: "c", Desc: true},
	}
	if len(sel.OrderBy) != len(want) {
		t.Fatalf("order by = %v, want %v", sel.OrderBy, want)
	}
	for i := range want {
		if sel.OrderBy[i] != want[i] {
			t.Errorf("order by[%d] = %v, want %v", i, sel.OrderBy[i], want[i])
		}
	}
}

func TestParse_SelectExpressionColumns(t *testing.T) {
	stmt := mustParse(t, "SELECT price * 2 + 1, *, name FROM products;")
	sel := stmt.(*SelectStmt)
	if len(sel.Columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(sel.Columns))
	}
	if got := sel.Columns[0].String(); got != "((price * 2) + 1)" {
		t.Errorf("column[0] = %s, want ((price * 2) + 1)", got)
	}
	if _, ok := sel.Columns[1].(*StarExpr); !ok {
		t.Errorf("column[1] = %T, want *StarExpr", sel.Columns[1])
	}
	assertColumnRef(t, sel.Columns[2], "name")
}

func TestParse_SelectLogicalWhere(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM t WHERE NOT done AND (age >= 18 OR vip = TRUE);")
	sel := stmt.(*SelectStmt)
	want := "((NOT done) AND ((age >= 18) OR (vip = TRUE)))"
	if got := sel.Where.String(); got != want {
		t.Fatalf("where = %s, want %s", got, want)
	}
}

func TestParse_SelectErrors(t *testing.T) {
	tests := []struct {
		input    string
		kind     ParseErrorKind
		expected string // checked when non-empty
	}{
		{"SELECT * FROM t", ParseExpectedToken, ";"},
		{"SELECT FROM t;", ParseUnexpectedToken, ""},
		{"SELECT * t;", ParseExpectedToken, "FROM"},
		{"SELECT * FROM 42;", ParseExpectedToken, "IDENT"},
		{"SELECT * FROM t ORDER x;", ParseExpectedToken, "BY"},
		{"SELECT * FROM t ORDER BY;", ParseExpectedToken, "IDENT"},
		{"SELECT * FROM t WHERE;", ParseUnexpectedToken, ""},
		{"SELECT * FROM t; extra", ParseUnexpectedToken, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			perr := parseErr(t, tt.input)
			if perr.Kind != tt.kind {
				t.Fatalf("kind = %d, want %d (%v)", perr.Kind, tt.kind, perr)
			}
			if tt.expected != "" && perr.Expected != tt.expected {
				t.Fatalf("expected = %q, want %q", perr.Expected, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// CREATE TABLE
// ---------------------------------------------------------------------------

func TestParse_CreateTable(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE products (id INT PRIMARY KEY, name VARCHAR(100));")
	ct, ok := stmt.(*CreateTableStmt)
	if !ok {
		t.Fatalf("got %T, want *CreateTableStmt", stmt)
	}
	if ct.Table != "products" {
		t.Errorf("table = %q, want %q", ct.Table, "products")
	}
	if len(ct.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(ct.Columns))
	}
	id := ct.Columns[0]
	if id.Name != "id" || id.Type.Kind != TypeInt || !id.PrimaryKey || id.NotNull {
		t.Errorf("column[0] = %+v, want id INT PRIMARY KEY", id)
	}
	name := ct.Columns[1]
	if name.Name != "name" || name.Type.Kind != TypeVarchar || name.Type.Length != 100 {
		t.Errorf("column[1] = %+v, want name VARCHAR(100)", name)
	}
	if name.PrimaryKey || name.NotNull || name.Check != nil {
		t.Errorf("column[1] has unexpected constraints: %+v", name)
	}
}

func TestParse_CreateTableConstraints(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE t (a INT NOT NULL PRIMARY KEY, b BOOL NOT NULL, c INT CHECK (c > 0));")
	ct := stmt.(*CreateTableStmt)

	a := ct.Columns[0]
	if !a.PrimaryKey || !a.NotNull {
		t.Errorf("column a = %+v, want PRIMARY KEY and NOT NULL in either order", a)
	}
	b := ct.Columns[1]
	if b.Type.Kind != TypeBool || !b.NotNull {
		t.Errorf("column b = %+v, want BOOL NOT NULL", b)
	}
	c := ct.Columns[2]
	if c.Check == nil {
		t.Fatal("column c: missing CHECK expression")
	}
	if got := c.Check.String(); got != "(c > 0)" {
		t.Errorf("check = %s, want (c > 0)", got)
	}
}

func TestParse_CreateTableErrors(t *testing.T) {
	tests := []struct {
		input    string
		kind     ParseErrorKind
		expected string
	}{
		{"CREATE users (id INT);", ParseExpectedToken, "TABLE"},
		{"CREATE TABLE (id INT);", ParseExpectedToken, "IDENT"},
		{"CREATE TABLE t id INT);", ParseExpectedToken, "("},
		{"CREATE TABLE t (id WIDGET);", ParseExpectedToken, "data type (INT, BOOL, or VARCHAR)"},
		{"CREATE TABLE t (name VARCHAR);", ParseExpectedToken, "("},
		{"CREATE TABLE t (name VARCHAR(abc));", ParseExpectedToken, "NUMBER"},
		{"CREATE TABLE t (id INT PRIMARY);", ParseExpectedToken, "KEY"},
		{"CREATE TABLE t (id INT NOT);", ParseExpectedToken, "NULL"},
		{"CREATE TABLE t (id INT)", ParseExpectedToken, ";"},
		{"CREATE TABLE t (id INT;", ParseExpectedToken, ")"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			perr := parseErr(t, tt.input)
			if perr.Kind != tt.kind {
				t.Fatalf("kind = %d, want %d (%v)", perr.Kind, tt.kind, perr)
			}
			if perr.Expected != tt.expected {
				t.Fatalf("expected = %q, want %q", perr.Expected, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Statement dispatch and error surface
// ---------------------------------------------------------------------------

func TestParse_UnknownStatement(t *testing.T) {
	for _, input := range []string{"DROP TABLE t;", "INSERT INTO t VALUES (1);", "42;"} {
		perr := parseErr(t, input)
		if perr.Kind != ParseUnknownStatement {
			t.Errorf("%q: kind = %d, want ParseUnknownStatement", input, perr.Kind)
		}
	}
}

func TestParse_EmptyInput(t *testing.T) {
	perr := parseErr(t, "")
	if perr.Kind != ParseUnexpectedEOF {
		t.Fatalf("kind = %d, want ParseUnexpectedEOF", perr.Kind)
	}
}

func TestParse_LexErrorPropagates(t *testing.T) {
	_, err := Parse("SELECT 'abc FROM t;")
	var lerr *LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("error is %T (%v), want *LexError", err, err)
	}
	if lerr.Kind != LexUnterminatedString {
		t.Fatalf("kind = %d, want LexUnterminatedString", lerr.Kind)
	}
}

func TestParseError_Message(t *testing.T) {
	_, err := Parse("SELECT * FROM t")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `expected ;`) || !strings.Contains(msg, "end of input") {
		t.Fatalf("message = %q, want it to name the semicolon and the actual token", msg)
	}
	if !strings.Contains(msg, "line 1") {
		t.Fatalf("message = %q, want a position", msg)
	}
}

// ---------------------------------------------------------------------------
// Canonical rendering
// ---------------------------------------------------------------------------

func TestStatementString_FixedPoint(t *testing.T) {
	// Rendering a parsed statement and parsing the rendering again must
	// converge: String(Parse(String(Parse(x)))) == String(Parse(x)).
	inputs := []string{
		"select name , age from users where age > 18 and name <> 'bob' ;",
		"SELECT * FROM t ORDER BY x DESC, y;",
		"SELECT price * 2 FROM items WHERE NOT sold;",
		"create table products (id int primary key, name varchar(100) not null, cheap bool check (price < 10));",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := mustParse(t, input).String()
			second := mustParse(t, first).String()
			if first != second {
				t.Fatalf("rendering not stable:\n first = %s\nsecond = %s", first, second)
			}
		})
	}
}

func TestStatementString_Select(t *testing.T) {
	stmt := mustParse(t, "SELECT name, age FROM users WHERE age > 18 ORDER BY age DESC;")
	want := "SELECT name, age FROM users WHERE (age > 18) ORDER BY age DESC;"
	if got := stmt.String(); got != want {
		t.Fatalf("String() = %s, want %s", got, want)
	}
}

func TestStatementString_CreateTable(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE p (id INT PRIMARY KEY, name VARCHAR(100) NOT NULL);")
	want := "CREATE TABLE p (id INT PRIMARY KEY, name VARCHAR(100) NOT NULL);"
	if got := stmt.String(); got != want {
		t.Fatalf("String() = %s, want %s", got, want)
	}
}
