package parser

import (
	"fmt"
	"strconv"

	"dialogscript/internal/ast"
	"dialogscript/internal/diag"
	"dialogscript/internal/token"
)

// leftParenSentinel occupies the operator stack for an open '(' that has
// not yet been matched by a ')'. It never appears in OperatorTable and
// is only ever pushed and popped, never applied.
const leftParenSentinel = ast.OperatorKind(-1)

// parseExpression runs the shunting-yard algorithm over the cursor,
// stopping at the first token that cannot continue an
// expression: a statement terminator ('>>'), an argument-list ',', or a
// ')' that closes a call this expression did not open. The caller is
// responsible for consuming that terminator itself.
func (p *Parser) parseExpression() (*ast.Expression, *diag.Error) {
	var operands []*ast.Expression
	var operators []ast.OperatorKind

	applyTop := func() *diag.Error {
		op := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		info := ast.OperatorTable[op]
		if len(operands) < info.Arity {
			return p.unexpected("expression")
		}
		if info.Arity == 1 {
			rhs := operands[len(operands)-1]
			operands[len(operands)-1] = ast.NewUnary(rhs.Pos, op, rhs)
			return nil
		}
		rhs := operands[len(operands)-1]
		lhs := operands[len(operands)-2]
		operands = operands[:len(operands)-1]
		operands[len(operands)-1] = ast.NewBinary(lhs.Pos, op, lhs, rhs)
		return nil
	}

	expectOperand := true
	for {
		tok := p.cur.Peek()

		if expectOperand {
			switch tok.Kind {
			case token.MINUS:
				p.cur.Advance()
				operators = append(operators, ast.OpNegate)
				continue
			case token.BANG:
				p.cur.Advance()
				operators = append(operators, ast.OpNot)
				continue
			case token.LEFT_PAREN:
				p.cur.Advance()
				operators = append(operators, leftParenSentinel)
				continue
			case token.NUMBER, token.STRING, token.VARIABLE, token.TRUE, token.FALSE, token.NULL:
				operand, err := p.parseLiteral()
				if err != nil {
					return nil, err
				}
				// A literal number immediately under a pending unary
				// negate folds into a plain negative Value rather than
				// a Compound node, so `<<set $v = n>>` yields Value(n)
				// for any integer n, including negatives.
				if len(operators) > 0 && operators[len(operators)-1] == ast.OpNegate &&
					operand.Kind == ast.ValueExpr && operand.Value.Kind == ast.NumberValue {
					operators = operators[:len(operators)-1]
					operand = ast.NewNumber(operand.Pos, -operand.Value.Number)
				}
				operands = append(operands, operand)
				expectOperand = false
			case token.FUNCTION:
				call, err := p.parseCall()
				if err != nil {
					return nil, err
				}
				operands = append(operands, call)
				expectOperand = false
			default:
				return nil, p.unexpectedExpected([]token.Kind{
					token.NUMBER, token.STRING, token.VARIABLE, token.TRUE, token.FALSE,
					token.NULL, token.LEFT_PAREN, token.FUNCTION, token.MINUS, token.BANG,
				})
			}
			continue
		}

		if op, ok := binaryOperatorFor(tok.Kind); ok {
			p.cur.Advance()
			info := ast.OperatorTable[op]
			for len(operators) > 0 && operators[len(operators)-1] != leftParenSentinel {
				top := ast.OperatorTable[operators[len(operators)-1]]
				pop := (info.Assoc == ast.LeftAssoc && info.Precedence <= top.Precedence) ||
					(info.Assoc == ast.RightAssoc && info.Precedence < top.Precedence)
				if !pop {
					break
				}
				if err := applyTop(); err != nil {
					return nil, err
				}
			}
			operators = append(operators, op)
			expectOperand = true
			continue
		}

		if tok.Kind == token.RIGHT_PAREN {
			if !containsSentinel(operators) {
				break // closes an enclosing call's parens, not ours
			}
			p.cur.Advance()
			for {
				if len(operators) == 0 {
					return nil, unbalancedParens(tok)
				}
				if operators[len(operators)-1] == leftParenSentinel {
					operators = operators[:len(operators)-1]
					break
				}
				if err := applyTop(); err != nil {
					return nil, err
				}
			}
			continue
		}

		break
	}

	for len(operators) > 0 {
		if operators[len(operators)-1] == leftParenSentinel {
			return nil, unbalancedParens(p.cur.Peek())
		}
		if err := applyTop(); err != nil {
			return nil, err
		}
	}

	if len(operands) != 1 {
		tok := p.cur.Peek()
		return nil, &diag.Error{Kind: diag.EmptyExpression, Line: tok.Line, Column: tok.Column, Message: "empty expression"}
	}
	return operands[0], nil
}

func containsSentinel(operators []ast.OperatorKind) bool {
	for _, o := range operators {
		if o == leftParenSentinel {
			return true
		}
	}
	return false
}

func unbalancedParens(tok token.Token) *diag.Error {
	return &diag.Error{Kind: diag.UnbalancedParens, Line: tok.Line, Column: tok.Column, Message: "unbalanced parentheses"}
}

func (p *Parser) parseLiteral() (*ast.Expression, *diag.Error) {
	tok := p.cur.Advance()
	pos := posFromTok(tok)
	switch tok.Kind {
	case token.NUMBER:
		n, convErr := strconv.ParseFloat(tok.Value, 64)
		if convErr != nil {
			return nil, &diag.Error{Kind: diag.ParseError, Line: tok.Line, Column: tok.Column, Message: fmt.Sprintf("invalid number literal %q", tok.Value)}
		}
		return ast.NewNumber(pos, n), nil
	case token.STRING:
		return ast.NewString(pos, tok.Value), nil
	case token.VARIABLE:
		return ast.NewVariable(pos, tok.Value), nil
	case token.TRUE:
		return ast.NewBool(pos, true), nil
	case token.FALSE:
		return ast.NewBool(pos, false), nil
	case token.NULL:
		return ast.NewNull(pos), nil
	default:
		return nil, p.unexpected("literal")
	}
}

// parseCall parses `Ident '(' (Expression (',' Expression)*)? ')'` with
// the Ident already classified FUNCTION by the lexer.
func (p *Parser) parseCall() (*ast.Expression, *diag.Error) {
	calleeTok := p.cur.Advance() // FUNCTION
	pos := posFromTok(calleeTok)

	if err := p.expect(token.LEFT_PAREN); err != nil {
		return nil, err
	}
	var args []*ast.Expression
	if !p.cur.Check(token.RIGHT_PAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.cur.Match(token.COMMA) {
				break
			}
		}
	}
	if err := p.expect(token.RIGHT_PAREN); err != nil {
		return nil, err
	}
	return ast.NewCall(pos, calleeTok.Value, args), nil
}

func binaryOperatorFor(k token.Kind) (ast.OperatorKind, bool) {
	switch k {
	case token.PLUS:
		return ast.OpAdd, true
	case token.MINUS:
		return ast.OpSub, true
	case token.STAR:
		return ast.OpMul, true
	case token.SLASH:
		return ast.OpDiv, true
	case token.LESS:
		return ast.OpLess, true
	case token.LESS_EQUAL:
		return ast.OpLessEqual, true
	case token.GREATER:
		return ast.OpGreater, true
	case token.GREATER_EQUAL:
		return ast.OpGreaterEqual, true
	case token.EQUAL_EQUAL:
		return ast.OpEqual, true
	case token.BANG_EQUAL:
		return ast.OpNotEqual, true
	case token.AND_AND:
		return ast.OpAnd, true
	case token.OR_OR:
		return ast.OpOr, true
	case token.CARET:
		return ast.OpXor, true
	default:
		return 0, false
	}
}
