package repository

import "testing"

func TestClampLimit(t *testing.T) {
	cases := map[int]int{
		-1:    defaultListLimit,
		0:     defaultListLimit,
		10:    10,
		1000:  1000,
		50000: 1000,
	}
	for in, want := range cases {
		if got := clampLimit(in); got != want {
			t.Fatalf("clampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}
