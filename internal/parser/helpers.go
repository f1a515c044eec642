package parser

import (
	"copper/internal/ast"
	"copper/internal/diag"
	"copper/internal/source"
	"copper/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — лучший span для диагностики: на EOF указываем
// в конец последнего съеденного токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(msg)
	return token.Token{Kind: token.Invalid, Span: p.getDiagnosticSpan()}, false
}

// err репортует ошибку на текущем токене. Invalid-токены уже описаны лексером.
func (p *Parser) err(msg string) {
	if p.at(token.Invalid) {
		return
	}
	p.report(p.getDiagnosticSpan(), msg)
}

func (p *Parser) errUnexpected() {
	p.err("unexpected " + describe(p.peek()))
}

// report записывает синтаксическую ошибку. Повторная ошибка на том же
// месте (каскад от вложенного разбора) не репортится.
func (p *Parser) report(sp source.Span, msg string) {
	if p.reported && sp == p.lastErr {
		return
	}
	p.reported = true
	p.lastErr = sp
	p.errors++
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors != 0 && uint(p.errors) > p.opts.MaxErrors { // #nosec G115 -- errors is never negative
		return
	}
	p.opts.Reporter.Report(diag.NewSyntax(sp, msg))
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end-of-input"
	case token.Newline:
		return "newline"
	default:
		return "`" + tok.Text + "`"
	}
}

// resync прокручивает до конца выражения или до ключевого слова блока.
func (p *Parser) resync() {
	for !p.atTerm() && !p.atBodyEnd() {
		p.advance()
	}
}

func (p *Parser) atTerm() bool {
	return p.atAny(token.Newline, token.Semicolon, token.EOF)
}

// atBodyEnd — токены, на которых заканчивается список выражений.
func (p *Parser) atBodyEnd() bool {
	return p.atAny(token.EOF, token.KwEnd, token.KwRescue, token.KwEnsure, token.KwElse, token.RParen)
}

func (p *Parser) skipTerms() {
	for p.atAny(token.Newline, token.Semicolon) {
		p.advance()
	}
}

// canStartExpr reports whether the next token can begin an expression.
func (p *Parser) canStartExpr() bool {
	switch p.peek().Kind {
	case token.Ident, token.Const, token.Ivar, token.IntLit, token.FloatLit,
		token.StringLit, token.SymbolLit, token.KwNil, token.KwTrue, token.KwFalse,
		token.KwSelf, token.ColonColon, token.LBracket, token.LParen, token.Bang,
		token.Minus, token.Plus, token.KwBegin, token.KwDef, token.KwNot, token.KwReturn:
		return true
	}
	return false
}

// canStartCommandArg decides whether `name arg` is a call without
// parentheses: the argument must be separated by a space and, for `-`,
// `+` and `[`, glued to what follows (`foo -1`, not `foo - 1`).
func (p *Parser) canStartCommandArg() bool {
	if p.noCmd > 0 || !p.peek().SpaceBefore() || !p.canStartExpr() {
		return false
	}
	switch p.peek().Kind {
	case token.Minus, token.Plus:
		return !p.peekN(1).SpaceBefore()
	case token.KwNot, token.KwReturn:
		return false
	}
	return true
}

// wrapStmts: ноль выражений — nil, одно — оно само, иначе begin.
func wrapStmts(stmts []*ast.Node) *ast.Node {
	switch len(stmts) {
	case 0:
		return nil
	case 1:
		return stmts[0]
	}
	return &ast.Node{
		Kind:  ast.Begin,
		Stmts: stmts,
		Span:  stmts[0].Span.Cover(stmts[len(stmts)-1].Span),
	}
}

// callStart returns where a call expression begins.
func callStart(n *ast.Node) source.Span {
	if n.Receiver != nil {
		return n.Receiver.Span
	}
	return n.Loc.Selector
}
