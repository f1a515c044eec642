package parser

import (
	"copper/internal/ast"
	"copper/internal/source"
	"copper/internal/token"
)

// parseKwBegin: begin body [rescue...] [else] [ensure] end
func (p *Parser) parseKwBegin() *ast.Node {
	kw := p.advance()
	body := p.parseBody()
	end, ok := p.expect(token.KwEnd, "expected `end` to close `begin`")
	if !ok {
		return nil
	}
	return &ast.Node{
		Kind: ast.KwBegin,
		Body: body,
		Span: kw.Span.Cover(end.Span),
		Loc:  ast.Loc{Keyword: kw.Span, End: end.Span},
	}
}

// parseDef: def name[(params) | params] body end
func (p *Parser) parseDef() *ast.Node {
	kw := p.advance()
	name := p.peek()
	if name.Kind != token.Ident && name.Kind != token.Const {
		p.err("expected a method name after `def`")
		return nil
	}
	p.advance()

	p.pushScope()
	defer p.popScope()

	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	body := p.parseBody()
	end, ok := p.expect(token.KwEnd, "expected `end` to close `def "+name.Text+"`")
	if !ok {
		return nil
	}
	return &ast.Node{
		Kind: ast.Def,
		Name: name.Text,
		Args: params,
		Body: body,
		Span: kw.Span.Cover(end.Span),
		Loc:  ast.Loc{Keyword: kw.Span, Selector: name.Span, End: end.Span},
	}
}

func (p *Parser) parseParams() ([]*ast.Node, bool) {
	paren := p.at(token.LParen)
	if !paren && (p.atTerm() || !p.at(token.Ident)) {
		return nil, true
	}
	if paren {
		p.advance()
	}
	var params []*ast.Node
	for !p.at(token.RParen) || !paren {
		tok := p.peek()
		if tok.Kind != token.Ident {
			p.err("expected a parameter name, got " + describe(tok))
			return nil, false
		}
		p.advance()
		p.declare(tok.Text)
		params = append(params, &ast.Node{
			Kind: ast.Lvar,
			Name: tok.Text,
			Span: tok.Span,
			Loc:  ast.Loc{Selector: tok.Span},
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if paren {
		if _, ok := p.expect(token.RParen, "expected `)` after parameters"); !ok {
			return nil, false
		}
	}
	return params, true
}

// parseBody разбирает тело begin/def с необязательными rescue, else, ensure.
// Результат: (ensure (rescue body resbody... else) cleanup) без пустых уровней.
func (p *Parser) parseBody() *ast.Node {
	body := wrapStmts(p.parseStmts())

	var clauses []*ast.Node
	for p.at(token.KwRescue) {
		clause := p.parseResBody()
		if clause == nil {
			p.resync()
			p.parseStmts()
			continue
		}
		clauses = append(clauses, clause)
	}

	var elseNode *ast.Node
	var elseKw source.Span
	if p.at(token.KwElse) {
		if len(clauses) == 0 {
			p.err("`else` without `rescue` is useless")
		}
		elseKw = p.advance().Span
		elseNode = wrapStmts(p.parseStmts())
	}

	if len(clauses) > 0 {
		last := clauses[len(clauses)-1].Span
		if !elseKw.Empty() {
			last = elseKw
		}
		if elseNode != nil {
			last = elseNode.Span
		}
		first := clauses[0].Span
		if body != nil {
			first = body.Span
		}
		body = &ast.Node{
			Kind:    ast.Rescue,
			Body:    body,
			Clauses: clauses,
			Else:    elseNode,
			Span:    first.Cover(last),
			Loc:     ast.Loc{Keyword: clauses[0].Loc.Keyword, Else: elseKw},
		}
	}

	if p.at(token.KwEnsure) {
		kw := p.advance()
		cleanup := wrapStmts(p.parseStmts())
		span := kw.Span
		if body != nil {
			span = body.Span.Cover(span)
		}
		if cleanup != nil {
			span = span.Cover(cleanup.Span)
		}
		body = &ast.Node{
			Kind:    ast.Ensure,
			Body:    body,
			Cleanup: cleanup,
			Span:    span,
			Loc:     ast.Loc{Keyword: kw.Span},
		}
	}
	return body
}

// parseResBody: rescue [Exc, ...] [=> var] [then] body
func (p *Parser) parseResBody() *ast.Node {
	kw := p.advance()
	span := kw.Span

	var excs []*ast.Node
	p.noCmd++
	for !p.atTerm() && !p.atAny(token.FatArrow, token.KwThen) {
		e := p.parseOr()
		if e == nil {
			p.noCmd--
			return nil
		}
		excs = append(excs, e)
		span = span.Cover(e.Span)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.noCmd--

	var target *ast.Node
	var arrow source.Span
	if p.at(token.FatArrow) {
		arrow = p.advance().Span
		tok := p.peek()
		switch tok.Kind {
		case token.Ident:
			p.declare(tok.Text)
			target = &ast.Node{Kind: ast.Lvasgn, Name: tok.Text}
		case token.Ivar:
			target = &ast.Node{Kind: ast.Ivasgn, Name: tok.Text}
		default:
			p.err("expected a variable after `=>`")
			return nil
		}
		p.advance()
		target.Span = tok.Span
		target.Loc = ast.Loc{Selector: tok.Span}
		span = span.Cover(tok.Span)
	}
	if p.at(token.KwThen) {
		span = span.Cover(p.advance().Span)
	}

	body := wrapStmts(p.parseStmts())
	if body != nil {
		span = span.Cover(body.Span)
	}
	return &ast.Node{
		Kind:       ast.ResBody,
		Exceptions: excs,
		Target:     target,
		Body:       body,
		Span:       span,
		Loc:        ast.Loc{Keyword: kw.Span, Operator: arrow},
	}
}

// parseReturn: return [value, ...]
func (p *Parser) parseReturn() *ast.Node {
	kw := p.advance()
	n := &ast.Node{Kind: ast.Return, Span: kw.Span, Loc: ast.Loc{Keyword: kw.Span}}
	if p.atTerm() || p.atBodyEnd() || !p.canStartExpr() {
		return n
	}
	args, ok := p.parseArgList()
	if !ok {
		return nil
	}
	n.Args = args
	n.Span = n.Span.Cover(args[len(args)-1].Span)
	return n
}
