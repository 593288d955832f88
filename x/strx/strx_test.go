package strx

import "testing"

func TestFirst(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"", ""}, ""},
		{[]string{"pico-debug", "pico"}, "pico-debug"},
		{[]string{"", "pico"}, "pico"},
	}
	for _, c := range cases {
		if got := First(c.in...); got != c.want {
			t.Errorf("First(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
