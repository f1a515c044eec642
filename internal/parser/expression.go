package parser

import (
	"copper/internal/ast"
	"copper/internal/token"
)

// parseRange: or-выражение [(.. | ...) [or-выражение]]
func (p *Parser) parseRange() *ast.Node {
	left := p.parseOr()
	if left == nil || !p.atAny(token.DotDot, token.DotDotDot) {
		return left
	}
	op := p.advance()
	kind := ast.Irange
	if op.Kind == token.DotDotDot {
		kind = ast.Erange
	}
	n := &ast.Node{Kind: kind, Left: left, Span: left.Span.Cover(op.Span), Loc: ast.Loc{Operator: op.Span}}
	if p.atTerm() || !p.canStartExpr() {
		return n // бесконечный диапазон `1..`
	}
	right := p.parseOr()
	if right == nil {
		return nil
	}
	n.Right = right
	n.Span = n.Span.Cover(right.Span)
	return n
}

func (p *Parser) parseOr() *ast.Node {
	return p.parseLogical(token.OrOr, ast.Or, p.parseAnd)
}

func (p *Parser) parseAnd() *ast.Node {
	return p.parseLogical(token.AndAnd, ast.And, func() *ast.Node { return p.parseBinary(precEquality) })
}

func (p *Parser) parseLogical(op token.Kind, kind ast.Kind, next func() *ast.Node) *ast.Node {
	left := next()
	for left != nil && p.at(op) {
		tok := p.advance()
		right := next()
		if right == nil {
			return nil
		}
		left = &ast.Node{
			Kind:  kind,
			Left:  left,
			Right: right,
			Span:  left.Span.Cover(right.Span),
			Loc:   ast.Loc{Operator: tok.Span},
		}
	}
	return left
}

// parseBinary — precedence climbing по op_table; операторы становятся send.
func (p *Parser) parseBinary(minPrec int) *ast.Node {
	left := p.parseUnary()
	for left != nil {
		tok := p.peek()
		prec := binaryPrec(tok.Kind)
		if prec < minPrec {
			return left
		}
		p.advance()
		p.noCmd++
		right := p.parseBinary(prec + 1)
		p.noCmd--
		if right == nil {
			if p.atTerm() {
				p.err("expected an operand after `" + tok.Text + "`")
			}
			return nil
		}
		left = &ast.Node{
			Kind:     ast.Send,
			Name:     tok.Text,
			Receiver: left,
			Args:     []*ast.Node{right},
			Span:     left.Span.Cover(right.Span),
			Loc:      ast.Loc{Selector: tok.Span},
		}
	}
	return left
}

// parseUnary: ! - + и отрицательные числовые литералы.
func (p *Parser) parseUnary() *ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.Bang:
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Node{
			Kind:     ast.Send,
			Name:     "!",
			Receiver: operand,
			Span:     tok.Span.Cover(operand.Span),
			Loc:      ast.Loc{Selector: tok.Span},
		}
	case token.Minus, token.Plus:
		p.advance()
		next := p.peek()
		if (next.Kind == token.IntLit || next.Kind == token.FloatLit) && !next.SpaceBefore() {
			p.advance()
			lit := numberLiteral(next)
			lit.Span = tok.Span.Cover(next.Span)
			if tok.Kind == token.Minus {
				lit.Literal = "-" + lit.Literal
			}
			return p.parsePostfix(lit)
		}
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Node{
			Kind:     ast.Send,
			Name:     tok.Text + "@",
			Receiver: operand,
			Span:     tok.Span.Cover(operand.Span),
			Loc:      ast.Loc{Selector: tok.Span},
		}
	}
	prim := p.parsePrimary()
	if prim == nil {
		return nil
	}
	return p.parsePostfix(prim)
}
