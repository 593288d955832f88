// services/hal/internal/halcore/types_test.go

package halcore

import "testing"

func TestEdgeToString(t *testing.T) {
	for e, want := range map[Edge]string{
		EdgeRising:  "rising",
		EdgeFalling: "falling",
		EdgeBoth:    "both",
		EdgeNone:    "none",
		Edge(42):    "none",
	} {
		if got := EdgeToString(e); got != want {
			t.Errorf("EdgeToString(%d) = %q, want %q", e, got, want)
		}
	}
}
