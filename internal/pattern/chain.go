package pattern

import (
	"github.com/dlclark/regexp2"

	"copper/internal/ast"
)

// zoneSuffix: полное числовое смещение (+0100, -05:00) или цифра и Z в самом
// конце. День даты (`-11`) смещением не считается.
var zoneSuffix = regexp2.MustCompile(`([+-]\d{2}:?\d{2}|\dZ)\z`, regexp2.None)

// HasExplicitZone reports whether a timestamp literal carries its own zone:
// a trailing numeric offset or a digit followed by `Z`.
func HasExplicitZone(text string) bool {
	ok, err := zoneSuffix.MatchString(text)
	return err == nil && ok
}

// MethodChain returns the method names of call and of every enclosing call
// that takes the previous one as its receiver, innermost first:
// for `Date.current.to_time.utc.iso8601` starting at `to_time` it yields
// [to_time utc iso8601].
func MethodChain(tree *ast.Tree, call *ast.Node) []string {
	if !call.IsCall() {
		return nil
	}
	names := []string{call.Name}
	cur := call
	for parent := tree.Parent(cur); parent.IsCall() && parent.Receiver == cur; parent = tree.Parent(cur) {
		names = append(names, parent.Name)
		cur = parent
	}
	return names
}
