package handlers

import "testing"

func TestParsePagination(t *testing.T) {
	cases := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 10},
		{"3", "25", 3, 25},
		{"0", "0", 1, 10},
		{"-1", "-5", 1, 10},
		{"abc", "xyz", 1, 10},
		{"2", "", 2, 10},
	}
	for _, tc := range cases {
		page, limit := parsePagination(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("parsePagination(%q, %q): expected (%d, %d), got (%d, %d)",
				tc.page, tc.limit, tc.wantPage, tc.wantLimit, page, limit)
		}
	}
}
