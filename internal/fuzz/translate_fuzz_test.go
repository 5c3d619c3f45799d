package fuzztests

import (
	"context"
	"testing"
	"time"

	"wagner/internal/diag"
	"wagner/internal/signal/sigfile"
	"wagner/internal/testkit"
	"wagner/internal/translate"
)

// translateTimeout bounds one input; a slower run points at a loop in the
// walk or the uninline pass.
const translateTimeout = 5 * time.Second

func FuzzGraphFileTranslates(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		loaded, err := sigfile.Parse(clampInput(input))
		if err != nil {
			return
		}
		for _, hits := range []translate.HitPolicy{translate.HitWrap, translate.HitRaw} {
			bag := diag.NewBag(128)
			res := translate.Program(context.Background(), loaded.Graph, loaded.Root, translate.Options{
				Hits:     hits,
				Reporter: diag.BagReporter{Bag: bag},
			})
			if err := testkit.CheckIRInvariants(res.IR, res.Root, res.Env); err != nil {
				t.Fatalf("%s: %v", hits, err)
			}
			res.Inline()
			if err := testkit.CheckInlined(res.IR, res.Root, res.Counts); err != nil {
				t.Fatalf("%s inline: %v", hits, err)
			}
		}
	})
}

func FuzzGraphFileNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			loaded, err := sigfile.Parse(input)
			if err != nil {
				return
			}
			res := translate.Program(context.Background(), loaded.Graph, loaded.Root, translate.Options{Inline: true})
			_ = res.String()
		}()
		select {
		case <-done:
		case <-time.After(translateTimeout):
			t.Fatalf("translation did not finish within %s (input %d bytes)", translateTimeout, len(input))
		}
	})
}
