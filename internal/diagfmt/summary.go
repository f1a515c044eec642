package diagfmt

import (
	"strings"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	keyFiles     = "%d files inspected"
	keyOffenses  = "%d offenses detected"
	keyCorrected = "%d offenses corrected"
	keyCanFix    = "%d offenses autocorrectable"
)

var summaryCatalog = sync.OnceValue(func() catalog.Catalog {
	b := catalog.NewBuilder()
	set := func(key, one, other string) {
		if err := b.Set(language.English, key, plural.Selectf(1, "%d", plural.One, one, plural.Other, other)); err != nil {
			panic(err)
		}
	}
	set(keyFiles, "%d file inspected", "%d files inspected")
	set(keyOffenses, "%d offense detected", "%d offenses detected")
	set(keyCorrected, "%d offense corrected", "%d offenses corrected")
	set(keyCanFix, "%d offense autocorrectable", "%d offenses autocorrectable")
	return b
})

// Totals are the counts the summary line reports.
type Totals struct {
	Files       int
	Offenses    int
	Corrected   int
	Correctable int
}

// Summary renders totals the way the CLI prints them after a run:
// `3 files inspected, 2 offenses detected, 1 offense corrected`.
func Summary(t Totals) string {
	p := message.NewPrinter(language.English, message.Catalog(summaryCatalog()))
	parts := []string{p.Sprintf(keyFiles, t.Files)}
	if t.Offenses == 0 {
		parts = append(parts, "no offenses detected")
	} else {
		parts = append(parts, p.Sprintf(keyOffenses, t.Offenses))
	}
	if t.Corrected > 0 {
		parts = append(parts, p.Sprintf(keyCorrected, t.Corrected))
	}
	if t.Correctable > 0 {
		parts = append(parts, p.Sprintf(keyCanFix, t.Correctable))
	}
	return strings.Join(parts, ", ")
}
