package pattern

// Names is a predicate over method names.
type Names interface {
	MatchName(name string) bool
}

type anyName struct{}

func (anyName) MatchName(string) bool { return true }

// AnyName accepts every method name.
var AnyName Names = anyName{}

type exactName string

func (e exactName) MatchName(name string) bool { return string(e) == name }

// Name accepts exactly name.
func Name(name string) Names { return exactName(name) }

type nameSet map[string]struct{}

func (s nameSet) MatchName(name string) bool {
	_, ok := s[name]
	return ok
}

// OneOf accepts any of names.
func OneOf(names ...string) Names {
	s := make(nameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}
