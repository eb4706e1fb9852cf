//go:build go1.18
// +build go1.18

package powercalc_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/powercalc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y = 3")
	f.Add("hex(ans)")
	f.Add("$1 + $2")
	f.Add("1×2")
	f.Fuzz(func(t *testing.T, s string) {
		tr := powercalc.NewTranscript()
		tr.Enter("x = 2")
		e := tr.Enter(s)
		var ie *powercalc.InternalError
		if errors.As(e.Err, &ie) && tr.Session().Broken() {
			t.Fatalf("%q broke the session: %v", s, ie.Err)
		}
		if tr.LineCount() != 4 {
			t.Fatalf("%q: want 4 lines, got %d", s, tr.LineCount())
		}
	})
}
