package parser

import (
	"copper/internal/ast"
	"copper/internal/token"
)

// parsePostfix разбирает цепочку .name, &.name, ::Name и [index] после n.
func (p *Parser) parsePostfix(n *ast.Node) *ast.Node {
	for n != nil {
		tok := p.peek()
		switch {
		case tok.Kind == token.Dot || tok.Kind == token.AmpDot:
			n = p.parseMethodCall(n)
		case tok.Kind == token.ColonColon && !tok.SpaceBefore():
			n = p.parseScoped(n)
		case tok.Kind == token.LBracket && (!tok.SpaceBefore() || n.Kind != ast.Send):
			n = p.parseIndex(n)
		default:
			return n
		}
	}
	return nil
}

func (p *Parser) parseMethodCall(recv *ast.Node) *ast.Node {
	dot := p.advance()
	name := p.peek()
	if name.Kind != token.Ident && name.Kind != token.Const {
		p.err("expected a method name after `" + dot.Text + "`")
		return nil
	}
	p.advance()
	kind := ast.Send
	if dot.Kind == token.AmpDot {
		kind = ast.CSend
	}
	call := &ast.Node{
		Kind:     kind,
		Name:     name.Text,
		Receiver: recv,
		Span:     recv.Span.Cover(name.Span),
		Loc:      ast.Loc{Dot: dot.Span, Selector: name.Span},
	}
	if !p.parseCallArgs(call) {
		return nil
	}
	return call
}

// parseScoped: Scope::Name (константа) или Scope::meth (вызов).
func (p *Parser) parseScoped(scope *ast.Node) *ast.Node {
	colons := p.advance()
	name := p.peek()
	switch name.Kind {
	case token.Const:
		p.advance()
		if p.at(token.LParen) && p.adjacent() {
			return p.finishScopedCall(scope, colons, name)
		}
		return &ast.Node{
			Kind:     ast.Const,
			Name:     name.Text,
			Receiver: scope,
			Span:     scope.Span.Cover(name.Span),
			Loc:      ast.Loc{Dot: colons.Span, Selector: name.Span},
		}
	case token.Ident:
		p.advance()
		return p.finishScopedCall(scope, colons, name)
	}
	p.err("expected a name after `::`")
	return nil
}

func (p *Parser) finishScopedCall(scope *ast.Node, colons, name token.Token) *ast.Node {
	call := &ast.Node{
		Kind:     ast.Send,
		Name:     name.Text,
		Receiver: scope,
		Span:     scope.Span.Cover(name.Span),
		Loc:      ast.Loc{Dot: colons.Span, Selector: name.Span},
	}
	if !p.parseCallArgs(call) {
		return nil
	}
	return call
}

// parseIndex: recv[args]
func (p *Parser) parseIndex(recv *ast.Node) *ast.Node {
	open := p.advance()
	var args []*ast.Node
	if !p.at(token.RBracket) {
		var ok bool
		if args, ok = p.parseArgList(); !ok {
			return nil
		}
	}
	closeTok, ok := p.expect(token.RBracket, "expected `]`")
	if !ok {
		return nil
	}
	return &ast.Node{
		Kind:     ast.Send,
		Name:     "[]",
		Receiver: recv,
		Args:     args,
		Span:     recv.Span.Cover(closeTok.Span),
		Loc:      ast.Loc{Begin: open.Span, End: closeTok.Span, Selector: open.Span.Cover(closeTok.Span)},
	}
}

// parseCallArgs дописывает к call аргументы: в скобках, если `(` стоит
// вплотную к имени, или без скобок (command call). Возвращает false при ошибке.
func (p *Parser) parseCallArgs(call *ast.Node) bool {
	switch {
	case p.at(token.LParen) && p.adjacent():
		open := p.advance()
		var args []*ast.Node
		if !p.at(token.RParen) {
			var ok bool
			if args, ok = p.parseArgList(); !ok {
				return false
			}
		}
		closeTok, ok := p.expect(token.RParen, "expected `)` to close the argument list of `"+call.Name+"`")
		if !ok {
			return false
		}
		call.Args = args
		call.Loc.Begin = open.Span
		call.Loc.End = closeTok.Span
		call.Span = callStart(call).Cover(closeTok.Span)
	case p.canStartCommandArg():
		args, ok := p.parseArgList()
		if !ok {
			return false
		}
		call.Args = args
		call.Span = callStart(call).Cover(args[len(args)-1].Span)
	}
	return true
}

// parseArgList: expr {, expr}. Вложенные command call запрещены.
func (p *Parser) parseArgList() ([]*ast.Node, bool) {
	p.noCmd++
	defer func() { p.noCmd-- }()
	var args []*ast.Node
	for {
		arg := p.parseNot()
		if arg == nil {
			p.err("expected an argument, got " + describe(p.peek()))
			return nil, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			return args, true
		}
		p.advance()
		if p.atAny(token.RBracket, token.RParen) {
			return args, true // висящая запятая
		}
	}
}
