// Package parser is a hand-written recursive-descent parser over the
// token stream produced by internal/lexer. It has at most two-token
// lookahead at every statement dispatch point, and falls back to the
// Cursor's snapshot/restore only where the grammar genuinely needs it
// (the lookahead inside an if-statement's continuation, handled here by
// plain two-token peeking rather than a fork, since it stays decidable).
//
// Every parse method returns (value, *diag.Error); the first non-nil
// error is propagated immediately, with no synchronize/resume step, so a
// malformed document stops at its first problem rather than accumulating
// a list of them.
package parser

import (
	"fmt"
	"strings"

	"dialogscript/internal/ast"
	"dialogscript/internal/diag"
	"dialogscript/internal/lexer"
	"dialogscript/internal/token"
)

// Parser holds the mutable cursor over one token stream. Construct one
// with Parse; there is no exported constructor since the type carries no
// configuration.
type Parser struct {
	cur *Cursor
}

// Parse lexes and parses source into the root Node, named "Start". The
// first error from either stage halts parsing immediately.
func Parse(source string) (*ast.Node, *diag.Error) {
	toks, err := lexer.Scan(source)
	if err != nil {
		return nil, err
	}
	p := &Parser{cur: newCursor(toks)}
	stmts, perr := p.parseStatements("Start")
	if perr != nil {
		return nil, perr
	}
	if !p.cur.IsAtEnd() {
		return nil, p.unexpected("top-level")
	}
	return &ast.Node{Name: "Start", Statements: stmts}, nil
}

// parseStatements parses statements belonging to nodeName until a Dedent
// or EndOfInput is reached. A shortcut-option-group run, if encountered,
// consumes the rest of the statement list as its epilogue and terminates
// the loop early.
func (p *Parser) parseStatements(nodeName string) ([]ast.Statement, *diag.Error) {
	var stmts []ast.Statement
	for {
		tok := p.cur.Peek()
		if tok.Kind == token.DEDENT || tok.Kind == token.EOF {
			return stmts, nil
		}
		if tok.Kind == token.SHORTCUT_OPTION {
			group, err := p.parseShortcutGroup(nodeName)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, ast.Statement{Kind: ast.ShortcutGroupStmt, Pos: group.Pos, ShortcutGroup: group})
			return stmts, nil
		}
		stmt, err := p.parseStatement(nodeName)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseStatement(nodeName string) (ast.Statement, *diag.Error) {
	tok := p.cur.Peek()
	switch tok.Kind {
	case token.INDENT:
		block, err := p.parseBlock(nodeName)
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.BlockStmt, Pos: block.Pos, Block: block}, nil
	case token.TEXT:
		p.cur.Advance()
		return ast.Statement{Kind: ast.LineStmt, Pos: posFromTok(tok), Line: tok.Value}, nil
	case token.OPTION_START:
		return p.parseOptionStatement()
	case token.BEGIN_COMMAND:
		return p.parseCommandStatement(nodeName)
	default:
		return ast.Statement{}, p.unexpected("statement")
	}
}

// parseBlock parses `Indent Statement+ Dedent`.
func (p *Parser) parseBlock(nodeName string) (*ast.Block, *diag.Error) {
	startTok := p.cur.Advance() // Indent
	pos := posFromTok(startTok)
	stmts, err := p.parseStatements(nodeName)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, p.unexpectedExpected([]token.Kind{token.TEXT, token.BEGIN_COMMAND, token.OPTION_START, token.SHORTCUT_OPTION})
	}
	if err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return &ast.Block{Pos: pos, Statements: stmts}, nil
}

// parseClauseBody parses an if-clause body: an
// indented Block when the source actually indents the clause, or no
// statements at all when it doesn't (an empty `<<else>>`, for instance).
func (p *Parser) parseClauseBody(nodeName string) ([]ast.Statement, *diag.Error) {
	if !p.cur.Check(token.INDENT) {
		return nil, nil
	}
	block, err := p.parseBlock(nodeName)
	if err != nil {
		return nil, err
	}
	return block.Statements, nil
}

func (p *Parser) parseOptionStatement() (ast.Statement, *diag.Error) {
	startTok := p.cur.Advance() // '[['
	pos := posFromTok(startTok)

	first := p.cur.Peek()
	if first.Kind != token.TEXT {
		return ast.Statement{}, p.unexpectedExpected([]token.Kind{token.TEXT})
	}
	p.cur.Advance()

	var label *string
	destination := first.Value
	if p.cur.Match(token.OPTION_DELIMIT) {
		second := p.cur.Peek()
		if second.Kind != token.TEXT {
			return ast.Statement{}, p.unexpectedExpected([]token.Kind{token.TEXT})
		}
		p.cur.Advance()
		l := first.Value
		label = &l
		destination = second.Value
	}

	if err := p.expect(token.OPTION_END); err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{
		Kind:   ast.OptionStmt,
		Pos:    pos,
		Option: &ast.OptionStatement{Pos: pos, Label: label, Destination: destination},
	}, nil
}

// parseCommandStatement parses everything after an already-peeked '<<',
// dispatching on the next token to decide which of if/set/custom-command
// this is. The next token alone always decides it, so no backtracking is
// needed here.
func (p *Parser) parseCommandStatement(nodeName string) (ast.Statement, *diag.Error) {
	beginTok := p.cur.Advance() // '<<'
	pos := posFromTok(beginTok)

	switch p.cur.Peek().Kind {
	case token.IF:
		ifStmt, err := p.parseIfStatement(nodeName, pos)
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.IfStmt, Pos: pos, If: ifStmt}, nil
	case token.SET:
		assign, err := p.parseAssignmentStatement(pos)
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.AssignmentStmt, Pos: pos, Assignment: assign}, nil
	default:
		return p.parseCustomCommand(pos)
	}
}

// parseIfStatement always appends a trailing else clause to Clauses when
// one is present, rather than constructing it and discarding the result.
func (p *Parser) parseIfStatement(nodeName string, pos ast.Position) (*ast.IfStatement, *diag.Error) {
	p.cur.Advance() // 'if'
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.END_COMMAND); err != nil {
		return nil, err
	}
	body, err := p.parseClauseBody(nodeName)
	if err != nil {
		return nil, err
	}
	clauses := []ast.Clause{{Pos: pos, Expr: expr, Statements: body}}

	for {
		if !p.cur.Check(token.BEGIN_COMMAND) {
			return nil, p.unexpectedExpected([]token.Kind{token.BEGIN_COMMAND})
		}
		clauseTok := p.cur.Peek()
		clausePos := posFromTok(clauseTok)

		switch p.cur.PeekAt(1).Kind {
		case token.ELSEIF:
			p.cur.Advance() // '<<'
			p.cur.Advance() // 'elseif'
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.END_COMMAND); err != nil {
				return nil, err
			}
			body, err := p.parseClauseBody(nodeName)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, ast.Clause{Pos: clausePos, Expr: expr, Statements: body})

		case token.ELSE:
			p.cur.Advance() // '<<'
			p.cur.Advance() // 'else'
			if err := p.expect(token.END_COMMAND); err != nil {
				return nil, err
			}
			body, err := p.parseClauseBody(nodeName)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, ast.Clause{Pos: clausePos, Expr: nil, Statements: body})
			if err := p.expectEndif(); err != nil {
				return nil, err
			}
			return &ast.IfStatement{Pos: pos, Clauses: clauses}, nil

		case token.ENDIF:
			if err := p.expectEndif(); err != nil {
				return nil, err
			}
			return &ast.IfStatement{Pos: pos, Clauses: clauses}, nil

		default:
			return nil, p.unexpectedExpected([]token.Kind{token.ELSEIF, token.ELSE, token.ENDIF})
		}
	}
}

func (p *Parser) expectEndif() *diag.Error {
	if !p.cur.Check(token.BEGIN_COMMAND) || p.cur.PeekAt(1).Kind != token.ENDIF {
		return p.unexpectedExpected([]token.Kind{token.ENDIF})
	}
	p.cur.Advance() // '<<'
	p.cur.Advance() // 'endif'
	return p.expect(token.END_COMMAND)
}

func (p *Parser) parseAssignmentStatement(pos ast.Position) (*ast.AssignmentStatement, *diag.Error) {
	p.cur.Advance() // 'set'

	varTok := p.cur.Peek()
	if varTok.Kind != token.VARIABLE {
		return nil, p.unexpectedExpected([]token.Kind{token.VARIABLE})
	}
	p.cur.Advance()

	opTok := p.cur.Peek()
	op, ok := assignOpFor(opTok.Kind)
	if !ok {
		return nil, p.unexpectedExpected([]token.Kind{token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN})
	}
	p.cur.Advance()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.END_COMMAND); err != nil {
		return nil, err
	}
	return &ast.AssignmentStatement{Pos: pos, Variable: varTok.Value, Op: op, Value: expr}, nil
}

// parseCustomCommand reconstructs the raw command text from the already
// tokenized Command-mode stream by joining token values with single
// spaces.
func (p *Parser) parseCustomCommand(pos ast.Position) (ast.Statement, *diag.Error) {
	var parts []string
	for !p.cur.Check(token.END_COMMAND) {
		if p.cur.IsAtEnd() {
			return ast.Statement{}, p.unexpectedExpected([]token.Kind{token.END_COMMAND})
		}
		parts = append(parts, p.cur.Advance().Value)
	}
	p.cur.Advance() // '>>'
	return ast.Statement{Kind: ast.CustomCommandStmt, Pos: pos, Command: strings.Join(parts, " ")}, nil
}

func (p *Parser) parseShortcutGroup(nodeName string) (*ast.ShortcutOptionGroup, *diag.Error) {
	pos := posFromTok(p.cur.Peek())
	var options []ast.ShortcutOption
	idx := 0
	for p.cur.Check(token.SHORTCUT_OPTION) {
		idx++
		opt, err := p.parseShortcutOption(nodeName, idx)
		if err != nil {
			return nil, err
		}
		options = append(options, *opt)
	}

	epilogueName := nodeName + ".Epilogue"
	epiloguePos := posFromTok(p.cur.Peek())
	epStmts, err := p.parseStatements(epilogueName)
	if err != nil {
		return nil, err
	}
	epilogue := &ast.Node{Pos: epiloguePos, Name: epilogueName, Statements: epStmts}

	return &ast.ShortcutOptionGroup{Pos: pos, Options: options, Epilogue: epilogue}, nil
}

func (p *Parser) parseShortcutOption(nodeName string, idx int) (*ast.ShortcutOption, *diag.Error) {
	arrowTok := p.cur.Advance() // '->'
	pos := posFromTok(arrowTok)

	labelTok := p.cur.Peek()
	if labelTok.Kind != token.TEXT {
		return nil, p.unexpectedExpected([]token.Kind{token.TEXT})
	}
	p.cur.Advance()

	var condition *ast.Expression
	if p.cur.Check(token.BEGIN_COMMAND) && p.cur.PeekAt(1).Kind == token.IF {
		p.cur.Advance() // '<<'
		p.cur.Advance() // 'if'
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.END_COMMAND); err != nil {
			return nil, err
		}
		condition = expr
	}

	var bodyNode *ast.Node
	if p.cur.Check(token.INDENT) {
		childName := fmt.Sprintf("%s.%d", nodeName, idx)
		block, err := p.parseBlock(childName)
		if err != nil {
			return nil, err
		}
		bodyNode = &ast.Node{Pos: block.Pos, Name: childName, Statements: block.Statements}
	}

	return &ast.ShortcutOption{Pos: pos, Label: labelTok.Value, Condition: condition, Body: bodyNode}, nil
}

func posFromTok(tok token.Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}

func (p *Parser) expect(kind token.Kind) *diag.Error {
	if p.cur.Check(kind) {
		p.cur.Advance()
		return nil
	}
	return p.unexpectedExpected([]token.Kind{kind})
}

func (p *Parser) unexpectedExpected(expected []token.Kind) *diag.Error {
	tok := p.cur.Peek()
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = k.String()
	}
	return &diag.Error{
		Kind:     diag.UnexpectedToken,
		Line:     tok.Line,
		Column:   tok.Column,
		Message:  fmt.Sprintf("unexpected %s, expected one of: %s", tok.Kind.String(), strings.Join(names, ", ")),
		Expected: names,
	}
}

func (p *Parser) unexpected(context string) *diag.Error {
	tok := p.cur.Peek()
	return &diag.Error{
		Kind:    diag.UnexpectedToken,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf("unexpected %s in %s", tok.Kind.String(), context),
	}
}

func assignOpFor(k token.Kind) (ast.AssignOp, bool) {
	switch k {
	case token.ASSIGN:
		return ast.Assign, true
	case token.PLUS_ASSIGN:
		return ast.AddAssign, true
	case token.MINUS_ASSIGN:
		return ast.SubAssign, true
	case token.STAR_ASSIGN:
		return ast.MulAssign, true
	case token.SLASH_ASSIGN:
		return ast.DivAssign, true
	default:
		return 0, false
	}
}
