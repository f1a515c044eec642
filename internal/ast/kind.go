package ast

// Kind tags a Node.
type Kind uint8

const (
	Invalid Kind = iota
	// Begin is an implicit statement list (file body, multi-statement bodies).
	Begin
	// KwBegin is an explicit begin ... end block.
	KwBegin
	Def
	Ensure
	Rescue
	ResBody
	Send
	// CSend is a safe-navigation call (recv&.name).
	CSend
	Const
	// Cbase is the leading :: of a rooted constant path.
	Cbase
	Lvar
	Ivar
	Lvasgn
	Ivasgn
	Casgn
	Str
	Sym
	Int
	Float
	Nil
	True
	False
	Self
	Irange
	Erange
	Array
	Return
	And
	Or
)

var kindNames = [...]string{
	Invalid: "invalid",
	Begin:   "begin",
	KwBegin: "kwbegin",
	Def:     "def",
	Ensure:  "ensure",
	Rescue:  "rescue",
	ResBody: "resbody",
	Send:    "send",
	CSend:   "csend",
	Const:   "const",
	Cbase:   "cbase",
	Lvar:    "lvar",
	Ivar:    "ivar",
	Lvasgn:  "lvasgn",
	Ivasgn:  "ivasgn",
	Casgn:   "casgn",
	Str:     "str",
	Sym:     "sym",
	Int:     "int",
	Float:   "float",
	Nil:     "nil",
	True:    "true",
	False:   "false",
	Self:    "self",
	Irange:  "irange",
	Erange:  "erange",
	Array:   "array",
	Return:  "return",
	And:     "and",
	Or:      "or",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsCall reports whether k is a method call (plain or safe-navigation).
func (k Kind) IsCall() bool { return k == Send || k == CSend }

// IsLiteral reports whether k is a literal value.
func (k Kind) IsLiteral() bool {
	switch k {
	case Str, Sym, Int, Float, Nil, True, False:
		return true
	}
	return false
}
