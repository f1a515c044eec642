package parser

import (
	"copper/internal/ast"
	"copper/internal/source"
	"copper/internal/token"
)

// parsePrimary разбирает атом выражения. При ошибке возвращает nil,
// не съедая неподходящий токен.
func (p *Parser) parsePrimary() *ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.FloatLit:
		p.advance()
		return numberLiteral(tok)
	case token.StringLit:
		p.advance()
		return &ast.Node{
			Kind:    ast.Str,
			Literal: tok.Text[1 : len(tok.Text)-1],
			Span:    tok.Span,
			Loc: ast.Loc{
				Begin: spanAt(tok, 0, 1),
				End:   spanAt(tok, len(tok.Text)-1, len(tok.Text)),
			},
		}
	case token.SymbolLit:
		p.advance()
		lit := tok.Text[1:]
		if len(lit) >= 2 && (lit[0] == '"' || lit[0] == '\'') {
			lit = lit[1 : len(lit)-1]
		}
		return &ast.Node{Kind: ast.Sym, Literal: lit, Span: tok.Span}
	case token.KwNil:
		return p.keywordLiteral(ast.Nil)
	case token.KwTrue:
		return p.keywordLiteral(ast.True)
	case token.KwFalse:
		return p.keywordLiteral(ast.False)
	case token.KwSelf:
		return p.keywordLiteral(ast.Self)
	case token.Ivar:
		p.advance()
		return &ast.Node{Kind: ast.Ivar, Name: tok.Text, Span: tok.Span, Loc: ast.Loc{Selector: tok.Span}}
	case token.Ident:
		return p.parseIdentifier()
	case token.Const:
		return p.parseConst()
	case token.ColonColon:
		return p.parseRootConst()
	case token.LBracket:
		return p.parseArray()
	case token.LParen:
		return p.parseParens()
	case token.KwBegin:
		return p.parseKwBegin()
	case token.KwDef:
		return p.parseDef()
	case token.KwReturn:
		return p.parseReturn()
	case token.Invalid:
		// лексер уже сообщил об ошибке
		p.advance()
		return nil
	}
	p.errUnexpected()
	return nil
}

func (p *Parser) keywordLiteral(kind ast.Kind) *ast.Node {
	tok := p.advance()
	return &ast.Node{Kind: kind, Span: tok.Span}
}

func numberLiteral(tok token.Token) *ast.Node {
	kind := ast.Int
	if tok.Kind == token.FloatLit {
		kind = ast.Float
	}
	return &ast.Node{Kind: kind, Literal: tok.Text, Span: tok.Span}
}

// parseIdentifier: известная локальная переменная — lvar, иначе вызов без получателя.
func (p *Parser) parseIdentifier() *ast.Node {
	tok := p.advance()
	if p.isLocal(tok.Text) && !(p.at(token.LParen) && p.adjacent()) {
		return &ast.Node{Kind: ast.Lvar, Name: tok.Text, Span: tok.Span, Loc: ast.Loc{Selector: tok.Span}}
	}
	call := &ast.Node{Kind: ast.Send, Name: tok.Text, Span: tok.Span, Loc: ast.Loc{Selector: tok.Span}}
	if !p.parseCallArgs(call) {
		return nil
	}
	return call
}

// parseConst: Name, либо Name(args) — вызов метода с именем константы.
func (p *Parser) parseConst() *ast.Node {
	tok := p.advance()
	if p.at(token.LParen) && p.adjacent() {
		call := &ast.Node{Kind: ast.Send, Name: tok.Text, Span: tok.Span, Loc: ast.Loc{Selector: tok.Span}}
		if !p.parseCallArgs(call) {
			return nil
		}
		return call
	}
	return &ast.Node{Kind: ast.Const, Name: tok.Text, Span: tok.Span, Loc: ast.Loc{Selector: tok.Span}}
}

// parseRootConst: ::Name
func (p *Parser) parseRootConst() *ast.Node {
	colons := p.advance()
	name := p.peek()
	if name.Kind != token.Const || name.SpaceBefore() {
		p.err("expected a constant after `::`")
		return nil
	}
	p.advance()
	cbase := &ast.Node{Kind: ast.Cbase, Span: colons.Span}
	return &ast.Node{
		Kind:     ast.Const,
		Name:     name.Text,
		Receiver: cbase,
		Span:     colons.Span.Cover(name.Span),
		Loc:      ast.Loc{Dot: colons.Span, Selector: name.Span},
	}
}

// parseArray: [a, b, ...]
func (p *Parser) parseArray() *ast.Node {
	open := p.advance()
	var elems []*ast.Node
	if !p.at(token.RBracket) {
		var ok bool
		if elems, ok = p.parseArgList(); !ok {
			return nil
		}
	}
	closeTok, ok := p.expect(token.RBracket, "expected `]` to close the array")
	if !ok {
		return nil
	}
	return &ast.Node{
		Kind: ast.Array,
		Args: elems,
		Span: open.Span.Cover(closeTok.Span),
		Loc:  ast.Loc{Begin: open.Span, End: closeTok.Span},
	}
}

// parseParens: ( stmts ) -> begin со скобками в Loc.
func (p *Parser) parseParens() *ast.Node {
	open := p.advance()
	saved := p.noCmd
	p.noCmd = 0
	stmts := p.parseStmts()
	p.noCmd = saved
	closeTok, ok := p.expect(token.RParen, "expected `)`")
	if !ok {
		return nil
	}
	return &ast.Node{
		Kind:  ast.Begin,
		Stmts: stmts,
		Span:  open.Span.Cover(closeTok.Span),
		Loc:   ast.Loc{Begin: open.Span, End: closeTok.Span},
	}
}

// spanAt returns the sub-span [from, to) of tok in bytes.
func spanAt(tok token.Token, from, to int) source.Span {
	sp := tok.Span
	sp.Start += uint32(from) // #nosec G115 -- offsets are within the token text
	sp.End = tok.Span.Start + uint32(to) // #nosec G115 -- offsets are within the token text
	return sp
}
