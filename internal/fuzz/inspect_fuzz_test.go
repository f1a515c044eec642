package fuzztests

import (
	"context"
	"errors"
	"testing"

	"copper/internal/cop/all"
	"copper/internal/driver"
	"copper/internal/source"
	"copper/internal/testkit"
)

// FuzzInspectAutocorrect runs every built-in cop with autocorrection.
// Corrections must either settle on parseable text or be discarded with
// one of the driver's loop errors.
func FuzzInspectAutocorrect(f *testing.F) {
	addCorpusSeeds(f)

	reg := all.Registry()
	cops, errs := reg.Build(nil)
	if len(errs) > 0 {
		f.Fatalf("build cops: %v", errs)
	}
	opts := driver.Options{Cops: cops, Autocorrect: true}

	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		res, err := driver.InspectSource(context.Background(), fs, "fuzz.rb", clamp(input, maxFuzzInput), opts)
		if err != nil {
			t.Fatalf("InspectSource: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if err := testkit.CheckOffenses(res.File, res.Offenses); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
		for _, e := range res.Errors {
			if !errors.Is(e, driver.ErrInfiniteLoop) && !errors.Is(e, driver.ErrCorrectionBroke) {
				t.Fatalf("unexpected error %v\ninput: %q", e, truncateForLog(input, 200))
			}
		}
		if res.SyntaxError() && res.Corrected != nil {
			t.Fatalf("corrected a file with syntax errors\ninput: %q", truncateForLog(input, 200))
		}
	})
}
