package parser

import (
	"fmt"
	"slices"

	"copper/internal/ast"
	"copper/internal/diag"
	"copper/internal/lexer"
	"copper/internal/source"
	"copper/internal/token"
)

type Options struct {
	MaxErrors uint // 0 — без лимита
	Reporter  diag.Reporter
}

// Result is the outcome of parsing one file.
type Result struct {
	Tree   *ast.Tree
	Errors int // syntax errors from lexer and parser
}

// Parser — состояние парсера на один файл
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	opts     Options
	errors   int
	scopes   []map[string]struct{} // локальные переменные, по одной карте на def
	noCmd    int                   // >0 — command call без скобок запрещён
	lastSpan source.Span           // span последнего съеденного токена
	lastErr  source.Span
	reported bool
}

// ParseFile parses file into a syntax tree. Syntax errors go to
// opts.Reporter as fatal Lint/Syntax offenses and are counted in
// Result.Errors; the returned tree then holds what could be recovered.
// An error is returned only when the resulting tree is malformed.
func ParseFile(file *source.File, opts Options) (Result, error) {
	counter := &countingReporter{next: opts.Reporter}
	lx := lexer.New(file, lexer.Options{Reporter: counter})
	p := Parser{
		file:   file,
		toks:   lx.All(),
		opts:   opts,
		scopes: []map[string]struct{}{{}},
	}
	p.errors = counter.n

	root := p.parseProgram()
	tree, err := ast.NewTree(file, root)
	if err != nil {
		return Result{Errors: p.errors}, fmt.Errorf("parse %s: %w", file.Path, err)
	}
	return Result{Tree: tree, Errors: p.errors}, nil
}

// countingReporter counts lexer errors before forwarding them.
type countingReporter struct {
	next diag.Reporter
	n    int
}

func (c *countingReporter) Report(o diag.Offense) {
	c.n++
	if c.next != nil {
		c.next.Report(o)
	}
}

// parseProgram — верхний уровень: последовательность выражений до EOF.
func (p *Parser) parseProgram() *ast.Node {
	stmts := p.parseStmts()
	for !p.at(token.EOF) {
		// лишний end / ensure / ) на верхнем уровне
		p.errUnexpected()
		p.advance()
		stmts = append(stmts, p.parseStmts()...)
	}
	return wrapStmts(stmts)
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1] // EOF
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// adjacent reports whether the next token follows the previous one with no
// whitespace in between (`foo(` versus `foo (`).
func (p *Parser) adjacent() bool {
	return !p.peek().SpaceBefore() && p.pos > 0
}

// scope management

func (p *Parser) pushScope() {
	p.scopes = append(p.scopes, map[string]struct{}{})
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) declare(name string) {
	p.scopes[len(p.scopes)-1][name] = struct{}{}
}

func (p *Parser) isLocal(name string) bool {
	_, ok := p.scopes[len(p.scopes)-1][name]
	return ok
}
