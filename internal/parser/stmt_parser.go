package parser

import (
	"copper/internal/ast"
	"copper/internal/token"
)

// parseStmts разбирает выражения, разделённые переводами строк и ';',
// до EOF или ключевого слова, закрывающего тело (end, rescue, ensure, else, ')').
func (p *Parser) parseStmts() []*ast.Node {
	var out []*ast.Node
	for {
		p.skipTerms()
		if p.atBodyEnd() {
			return out
		}
		start := p.pos
		n := p.parseStmt()
		if n != nil {
			out = append(out, n)
		}
		if !p.atTerm() && !p.atBodyEnd() {
			if n != nil {
				p.err("expected end of statement, got " + describe(p.peek()))
			}
			p.resync()
		}
		if p.pos == start {
			// ничего не съели — пропускаем токен, чтобы не зациклиться
			p.errUnexpected()
			p.advance()
		}
	}
}

// parseStmt: not-выражения, соединённые and / or.
func (p *Parser) parseStmt() *ast.Node {
	left := p.parseNot()
	for left != nil && p.atAny(token.KwAnd, token.KwOr) {
		op := p.advance()
		right := p.parseNot()
		if right == nil {
			return nil
		}
		kind := ast.And
		if op.Kind == token.KwOr {
			kind = ast.Or
		}
		left = &ast.Node{
			Kind:  kind,
			Left:  left,
			Right: right,
			Span:  left.Span.Cover(right.Span),
			Loc:   ast.Loc{Operator: op.Span},
		}
	}
	return left
}

func (p *Parser) parseNot() *ast.Node {
	if !p.at(token.KwNot) {
		return p.parseExpr()
	}
	kw := p.advance()
	operand := p.parseNot()
	if operand == nil {
		return nil
	}
	return &ast.Node{
		Kind:     ast.Send,
		Name:     "!",
		Receiver: operand,
		Span:     kw.Span.Cover(operand.Span),
		Loc:      ast.Loc{Selector: kw.Span},
	}
}

// parseExpr — выражение с присваиванием (правоассоциативно).
func (p *Parser) parseExpr() *ast.Node {
	lhs := p.parseRange()
	if lhs == nil || !p.at(token.Assign) {
		return lhs
	}
	return p.parseAssign(lhs)
}

func (p *Parser) parseAssign(lhs *ast.Node) *ast.Node {
	op := p.advance()
	var asgn *ast.Node
	switch {
	case lhs.Kind == ast.Lvar || isBareCall(lhs):
		// локальная переменная объявляется до разбора правой части: `x = x`
		p.declare(lhs.Name)
		asgn = &ast.Node{Kind: ast.Lvasgn, Name: lhs.Name}
	case lhs.Kind == ast.Ivar:
		asgn = &ast.Node{Kind: ast.Ivasgn, Name: lhs.Name}
	case lhs.Kind == ast.Const:
		asgn = &ast.Node{Kind: ast.Casgn, Name: lhs.Name, Receiver: lhs.Receiver}
	case lhs.IsCall() && lhs.Receiver != nil && lhs.Name == "[]":
		asgn = &ast.Node{Kind: lhs.Kind, Name: "[]=", Receiver: lhs.Receiver, Args: lhs.Args}
	case lhs.IsCall() && lhs.Receiver != nil && len(lhs.Args) == 0 && lhs.Loc.Begin.Empty() && isAttrName(lhs.Name):
		asgn = &ast.Node{Kind: lhs.Kind, Name: lhs.Name + "=", Receiver: lhs.Receiver}
	default:
		p.report(op.Span, "cannot assign to "+lhs.Kind.String())
		return nil
	}
	asgn.Loc = lhs.Loc
	asgn.Loc.Operator = op.Span

	value := p.parseExpr()
	if value == nil {
		if p.atTerm() || p.atBodyEnd() {
			p.err("expected a value after `=`")
		}
		return nil
	}
	if asgn.Kind.IsCall() {
		asgn.Args = append(append([]*ast.Node(nil), asgn.Args...), value)
	} else {
		asgn.Value = value
	}
	asgn.Span = lhs.Span.Cover(value.Span)
	return asgn
}

// isBareCall — `foo` без получателя, аргументов и скобок.
func isBareCall(n *ast.Node) bool {
	return n.Kind == ast.Send && n.Receiver == nil && len(n.Args) == 0 && n.Loc.Begin.Empty()
}

func isAttrName(name string) bool {
	if name == "" {
		return false
	}
	last := name[len(name)-1]
	return last != '?' && last != '!' && last != '='
}
