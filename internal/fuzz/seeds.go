package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
}

var inlineSeeds = []string{
	"",
	"root: a\nnodes:\n  - {id: a, op: int, value: 1}\n",
	"root: r\nnodes:\n  - {id: r, op: rec, args: [b]}\n  - {id: b, op: ref, index: 0}\n",
	"root: p\nnodes:\n  - {id: p, op: proj, index: 1, args: [r]}\n  - {id: r, op: rec, args: [l]}\n  - {id: l, op: list, args: [x, x]}\n  - {id: x, op: ref, index: 0}\n",
	"root: s\nnodes:\n  - {id: s, op: symbol, label: mystery, args: [i]}\n  - {id: i, op: input, index: 0}\n",
	"root: a\nnodes:\n  - {id: a, op: binop, binop: \"+\", args: [a, a]}\n",
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все графы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".yaml" && ext != ".yml" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
