package parser

import (
	"copper/internal/token"
)

// Таблица приоритетов для бинарных операторов, которые становятся send.
// Чем больше число, тем выше приоритет. && и || разбираются отдельно:
// они дают узлы and/or, а не вызовы методов.
const (
	precEquality       = 1 // == !=
	precComparison     = 2 // < <= > >=
	precAdditive       = 3 // + -
	precMultiplicative = 4 // * / %
)

// binaryPrec возвращает приоритет оператора или -1.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}
