package pagination

import "testing"

func TestLimitClamps(t *testing.T) {
	cases := []struct {
		size int
		want int
	}{
		{0, defaultPageSize},
		{-5, defaultPageSize},
		{10, 10},
		{100, 100},
		{500, maxPageSize},
	}
	for _, tc := range cases {
		if got := (Pagination{PageSize: tc.size}).Limit(); got != tc.want {
			t.Fatalf("Limit(%d) = %d, want %d", tc.size, got, tc.want)
		}
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	token := NextToken(0, 20, 50)
	if token == "" {
		t.Fatal("expected a next token")
	}
	if got := (Pagination{PageToken: token}).Offset(); got != 20 {
		t.Fatalf("Offset() = %d, want 20", got)
	}
}

func TestNextTokenEmptyWhenExhausted(t *testing.T) {
	if token := NextToken(40, 20, 50); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	if token := NextToken(0, 20, 20); token != "" {
		t.Fatalf("expected empty token at exact boundary, got %q", token)
	}
}

func TestOffsetInvalidTokensReadAsZero(t *testing.T) {
	for _, token := range []string{"", "not-base64!!", "LTU"} {
		if got := (Pagination{PageToken: token}).Offset(); got != 0 {
			t.Fatalf("Offset(%q) = %d, want 0", token, got)
		}
	}
}
