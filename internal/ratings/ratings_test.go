package ratings

import "testing"

func TestAverage(t *testing.T) {
	cases := []struct {
		values []int
		expect float64
	}{
		{nil, 0},
		{[]int{4}, 4},
		{[]int{4, 5}, 4.5},
		{[]int{1, 1, 2}, 1.3},
		{[]int{5, 5, 5, 5}, 5},
		{[]int{1, 2, 3, 4, 5}, 3},
	}
	for _, tc := range cases {
		if got := Average(tc.values); got != tc.expect {
			t.Fatalf("Average(%v): expected %v, got %v", tc.values, tc.expect, got)
		}
	}
}
