package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{10, 10},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}
	for _, c := range cases {
		if got := NormalizeLimit(c.in); got != c.want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParamsNormalize(t *testing.T) {
	p := Params{Limit: 500, Offset: -1}.Normalize()
	if p.Limit != MaxLimit {
		t.Fatalf("limit = %d", p.Limit)
	}
	if p.Offset != 0 {
		t.Fatalf("offset = %d", p.Offset)
	}
}
