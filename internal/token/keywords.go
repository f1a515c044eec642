package token

var keywords = map[string]Kind{
	"begin":  KwBegin,
	"rescue": KwRescue,
	"ensure": KwEnsure,
	"else":   KwElse,
	"end":    KwEnd,
	"def":    KwDef,
	"return": KwReturn,
	"nil":    KwNil,
	"true":   KwTrue,
	"false":  KwFalse,
	"self":   KwSelf,
	"and":    KwAnd,
	"or":     KwOr,
	"not":    KwNot,
	"then":   KwThen,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwBegin && k <= KwThen
}
