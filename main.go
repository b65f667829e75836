package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sandra449/sql-parser/config"
	"github.com/sandra449/sql-parser/parser"
	"github.com/sandra449/sql-parser/version"
)

func main() {
	cfg := config.Parse()

	if cfg.Eval != "" {
		if err := run(cfg, cfg.Eval); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(version.String())
	fmt.Println("Enter SQL statements ending with a semicolon, or 'exit' to quit.")
	fmt.Println("Press Enter twice to force-parse an incomplete statement.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	var pending string
	emptyLines := 0

	for {
		if pending == "" {
			fmt.Print("> ")
		} else {
			fmt.Print("... ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		if pending == "" && strings.EqualFold(line, "exit") {
			break
		}

		if line == "" {
			emptyLines++
			if emptyLines >= 2 && pending != "" {
				fmt.Println("parsing incomplete statement...")
				report(cfg, pending)
				pending = ""
				emptyLines = 0
			}
			continue
		}
		emptyLines = 0

		if pending != "" {
			pending += " "
		}
		pending += line

		if strings.Contains(line, ";") {
			report(cfg, pending)
			pending = ""
		}
	}

	fmt.Println("bye")
}

func report(cfg *config.Config, input string) {
	if err := run(cfg, input); err != nil {
		fmt.Println("error:", err)
	}
}

func run(cfg *config.Config, input string) error {
	if cfg.Tokens {
		tokens, err := parser.Tokenize(input)
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			fmt.Printf("%3d:%-3d %-8s %q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
		}
	}

	stmt, err := parser.Parse(input)
	if err != nil {
		return err
	}
	if cfg.Format == "sql" {
		fmt.Println(stmt.String())
	} else {
		fmt.Print(formatStatement(stmt))
	}
	return nil
}

// formatStatement renders an indented view of the AST for the REPL.
func formatStatement(stmt parser.Statement) string {
	var b strings.Builder
	switch s := stmt.(type) {
	case *parser.SelectStmt:
		b.WriteString("Select\n")
		fmt.Fprintf(&b, "  table: %s\n", s.Table)
		b.WriteString("  columns:\n")
		for _, col := range s.Columns {
			writeExpr(&b, col, 2)
		}
		if s.Where != nil {
			b.WriteString("  where:\n")
			writeExpr(&b, s.Where, 2)
		}
		if len(s.OrderBy) > 0 {
			b.WriteString("  order by:\n")
			for _, o := range s.OrderBy {
				dir := "ASC"
				if o.Desc {
					dir = "DESC"
				}
				fmt.Fprintf(&b, "    %s %s\n", o.Column, dir)
			}
		}
	case *parser.CreateTableStmt:
		b.WriteString("CreateTable\n")
		fmt.Fprintf(&b, "  table: %s\n", s.Table)
		b.WriteString("  columns:\n")
		for _, col := range s.Columns {
			fmt.Fprintf(&b, "    %s\n", col)
		}
	default:
		fmt.Fprintf(&b, "%s\n", stmt)
	}
	return b.String()
}

func writeExpr(b *strings.Builder, expr parser.Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := expr.(type) {
	case *parser.ColumnRef:
		fmt.Fprintf(b, "%sColumn %s\n", indent, e.Name)
	case *parser.StarExpr:
		fmt.Fprintf(b, "%sStar\n", indent)
	case *parser.IntegerLit:
		fmt.Fprintf(b, "%sInteger %d\n", indent, e.Value)
	case *parser.FloatLit:
		fmt.Fprintf(b, "%sFloat %g\n", indent, e.Value)
	case *parser.StringLit:
		fmt.Fprintf(b, "%sString %q\n", indent, e.Value)
	case *parser.BoolLit:
		fmt.Fprintf(b, "%sBool %t\n", indent, e.Value)
	case *parser.UnaryExpr:
		fmt.Fprintf(b, "%sUnary %s\n", indent, e.Op)
		writeExpr(b, e.Expr, depth+1)
	case *parser.BinaryExpr:
		fmt.Fprintf(b, "%sBinary %s\n", indent, e.Op)
		writeExpr(b, e.Left, depth+1)
		writeExpr(b, e.Right, depth+1)
	default:
		fmt.Fprintf(b, "%s%s\n", indent, expr)
	}
}
