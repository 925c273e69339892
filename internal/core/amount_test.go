package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"12.50", 12.5},
		{" 100 ", 100},
		{"-5", -5},
		{"1e3", 1000},
		{"NaN", 0},
		{"Inf", 0},
		{"-Infinity", 0},
		{"1,000", 0},
		{"$5", 0},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.out {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.out)
		}
	}
}

func TestSumIsOrderIndependent(t *testing.T) {
	amounts := []float64{0.1, 0.2, 0.3, 1e6, 0.7}

	var forward, backward Sum
	for i := range amounts {
		forward.Add(amounts[i])
		backward.Add(amounts[len(amounts)-1-i])
	}
	if forward.Float64() != backward.Float64() {
		t.Fatalf("forward %v != backward %v", forward.Float64(), backward.Float64())
	}
	if forward.Float64() != 1000001.3 {
		t.Fatalf("expected 1000001.3, got %v", forward.Float64())
	}
}

func TestSumMerge(t *testing.T) {
	var a, b Sum
	a.Add(0.1)
	b.Add(0.2)
	a.Merge(b)
	if a.Float64() != 0.3 {
		t.Fatalf("expected 0.3, got %v", a.Float64())
	}
}

func TestTotal(t *testing.T) {
	recs := []Record{{Amount: 100}, {Amount: 50}, {Amount: 0}}
	if got := Total(recs, func(r Record) float64 { return r.Amount }); got != 150 {
		t.Fatalf("expected 150, got %v", got)
	}
	if got := Total[Record](nil, func(r Record) float64 { return r.Amount }); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}
