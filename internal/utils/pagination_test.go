package utils

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
	}{
		{"exact fit", 1, 10, 100, 10},
		{"partial last page", 2, 10, 95, 10},
		{"single page", 1, 10, 3, 1},
		{"empty", 1, 10, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			if p.TotalPages != tc.wantPages {
				t.Errorf("totalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.Page != tc.page || p.Limit != tc.limit || p.Total != tc.total {
				t.Errorf("envelope fields lost: %+v", p)
			}
		})
	}
}
