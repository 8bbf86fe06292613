package main

import "testing"

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"https://a.example,https://b.example", []string{"https://a.example", "https://b.example"}},
		{" * ", []string{"*"}},
		{"a,,c,", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestEnvKey(t *testing.T) {
	if got := envKey("predict-timeout-seconds"); got != "CARDIOD_PREDICT_TIMEOUT_SECONDS" {
		t.Fatalf("envKey=%q", got)
	}
}
