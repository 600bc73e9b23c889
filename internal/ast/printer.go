package ast

import (
	"fmt"
	"strconv"
	"strings"
)

const printIndent = "    "

// Print renders n back to dialogue source text. It exists to make the
// print -> re-parse -> same AST shape round trip checkable, and does not
// attempt to reproduce the original source's exact whitespace.
func Print(n *Node) string {
	var sb strings.Builder
	printStatements(&sb, n.Statements, 0)
	return sb.String()
}

func printStatements(sb *strings.Builder, stmts []Statement, depth int) {
	for _, s := range stmts {
		printStatement(sb, s, depth)
	}
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat(printIndent, depth))
}

func printStatement(sb *strings.Builder, s Statement, depth int) {
	switch s.Kind {
	case LineStmt:
		indent(sb, depth)
		sb.WriteString(s.Line)
		sb.WriteString("\n")

	case CustomCommandStmt:
		indent(sb, depth)
		sb.WriteString("<<")
		sb.WriteString(s.Command)
		sb.WriteString(">>\n")

	case AssignmentStmt:
		a := s.Assignment
		indent(sb, depth)
		fmt.Fprintf(sb, "<<set $%s %s %s>>\n", a.Variable, a.Op.String(), PrintExpr(a.Value))

	case OptionStmt:
		o := s.Option
		indent(sb, depth)
		if o.Label != nil {
			fmt.Fprintf(sb, "[[%s|%s]]\n", *o.Label, o.Destination)
		} else {
			fmt.Fprintf(sb, "[[%s]]\n", o.Destination)
		}

	case BlockStmt:
		printStatements(sb, s.Block.Statements, depth+1)

	case IfStmt:
		printIfStatement(sb, s.If, depth)

	case ShortcutGroupStmt:
		printShortcutGroup(sb, s.ShortcutGroup, depth)
	}
}

func printIfStatement(sb *strings.Builder, ifs *IfStatement, depth int) {
	for i, clause := range ifs.Clauses {
		indent(sb, depth)
		switch {
		case i == 0:
			fmt.Fprintf(sb, "<<if %s>>\n", PrintExpr(clause.Expr))
		case clause.Expr != nil:
			fmt.Fprintf(sb, "<<elseif %s>>\n", PrintExpr(clause.Expr))
		default:
			sb.WriteString("<<else>>\n")
		}
		printStatements(sb, clause.Statements, depth+1)
	}
	indent(sb, depth)
	sb.WriteString("<<endif>>\n")
}

func printShortcutGroup(sb *strings.Builder, g *ShortcutOptionGroup, depth int) {
	for _, opt := range g.Options {
		indent(sb, depth)
		sb.WriteString("-> ")
		sb.WriteString(opt.Label)
		if opt.Condition != nil {
			fmt.Fprintf(sb, " <<if %s>>", PrintExpr(opt.Condition))
		}
		sb.WriteString("\n")
		if opt.Body != nil {
			printStatements(sb, opt.Body.Statements, depth+1)
		}
	}
	if g.Epilogue != nil {
		printStatements(sb, g.Epilogue.Statements, depth)
	}
}

// PrintExpr renders e as a fully parenthesized infix expression; every
// Compound expression is wrapped in parentheses so the printed form
// re-parses to an expression tree shaped exactly like e, independent of
// operator precedence.
func PrintExpr(e *Expression) string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case ValueExpr:
		return printValue(e.Value)
	case CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = PrintExpr(a)
		}
		return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
	case CompoundExpr:
		if e.Lhs == nil {
			return fmt.Sprintf("(%s%s)", e.Op.String(), PrintExpr(e.Rhs))
		}
		return fmt.Sprintf("(%s %s %s)", PrintExpr(e.Lhs), e.Op.String(), PrintExpr(e.Rhs))
	default:
		return ""
	}
}

// quoteStringLiteral escapes only '"' and '\\', matching the lexer's
// two-escape string grammar instead of Go's broader strconv.Quote
// escaping.
func quoteStringLiteral(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}

func printValue(v *Value) string {
	switch v.Kind {
	case NumberValue:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case VariableValue:
		return "$" + v.Name
	case StringValue:
		return quoteStringLiteral(v.Literal)
	case BoolValue:
		if v.Bool {
			return "true"
		}
		return "false"
	case NullValue:
		return "null"
	default:
		return ""
	}
}
