package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a statement.
	Newline

	// Ident represents a lowercase identifier or method name (may end in ? or !).
	Ident
	// Const represents a constant name.
	Const
	// Ivar represents an instance variable (@name).
	Ivar

	KwBegin  // begin
	KwRescue // rescue
	KwEnsure // ensure
	KwElse   // else
	KwEnd    // end
	KwDef    // def
	KwReturn // return
	KwNil    // nil
	KwTrue   // true
	KwFalse  // false
	KwSelf   // self
	KwAnd    // and
	KwOr     // or
	KwNot    // not
	KwThen   // then

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a float literal.
	FloatLit
	// StringLit represents a single or double quoted string literal.
	StringLit
	// SymbolLit represents a symbol literal (:name or :"name").
	SymbolLit

	Dot        // .
	AmpDot     // &.
	ColonColon // ::
	DotDot     // ..
	DotDotDot  // ...
	Assign     // =
	EqEq       // ==
	BangEq     // !=
	Lt         // <
	Gt         // >
	LtEq       // <=
	GtEq       // >=
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	AndAnd     // &&
	OrOr       // ||
	Bang       // !
	FatArrow   // =>
	Comma      // ,
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	Semicolon  // ;
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Newline: "Newline",
	Ident: "Ident", Const: "Const", Ivar: "Ivar",
	KwBegin: "begin", KwRescue: "rescue", KwEnsure: "ensure", KwElse: "else",
	KwEnd: "end", KwDef: "def", KwReturn: "return", KwNil: "nil", KwTrue: "true",
	KwFalse: "false", KwSelf: "self", KwAnd: "and", KwOr: "or", KwNot: "not", KwThen: "then",
	IntLit: "IntLit", FloatLit: "FloatLit", StringLit: "StringLit", SymbolLit: "SymbolLit",
	Dot: ".", AmpDot: "&.", ColonColon: "::", DotDot: "..", DotDotDot: "...",
	Assign: "=", EqEq: "==", BangEq: "!=", Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	AndAnd: "&&", OrOr: "||", Bang: "!", FatArrow: "=>", Comma: ",",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", Semicolon: ";",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsBinaryOp reports whether k is an infix operator that becomes a method call.
func (k Kind) IsBinaryOp() bool {
	switch k {
	case EqEq, BangEq, Lt, Gt, LtEq, GtEq, Plus, Minus, Star, Slash, Percent:
		return true
	}
	return false
}

// ContinuesLine reports whether a newline right after k cannot end a statement.
func (k Kind) ContinuesLine() bool {
	switch k {
	case Dot, AmpDot, ColonColon, DotDot, DotDotDot, Assign, EqEq, BangEq, Lt, Gt,
		LtEq, GtEq, Plus, Minus, Star, Slash, Percent, AndAnd, OrOr, Bang, FatArrow,
		Comma, LParen, LBracket, KwAnd, KwOr, KwNot:
		return true
	}
	return false
}
