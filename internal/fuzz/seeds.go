package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var inlineSeeds = []string{
	"",
	"Date.today\n",
	"::Date.yesterday.to_s\n",
	"x.to_time.round\n",
	"begin\nensure\nend\n",
	"def f; x; ensure; end\n",
	"begin\n  a\nrescue Foo, Bar => e\n  b\nelse\n  c\nensure\n  # note\nend\n",
	"x = [1, 2, 3]\n",
	"a &.b(c) && !d || e\n",
	"def\n",
	"x = ]\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata", "ruby")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.rb файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rb" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

// clamp copies src, cut to limit bytes.
func clamp(src []byte, limit int) []byte {
	if len(src) > limit {
		src = src[:limit]
	}
	return append([]byte(nil), src...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
