package calendar

import (
	"errors"
	"strings"
	"testing"

	"saju-match/internal/model"
)

const row2000 = "200002,42136,200001,60956,200002,42136,200003,51538,200004,42027,200005,51347,200006,51757,200007,70413,200008,71401,200009,71655,200010,80833,200011,71143,200012,70433\n"

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	tbl, err := ReadTable(strings.NewReader("# test\n"+row2000), 2000)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	return NewResolver(tbl)
}

func TestResolve(t *testing.T) {
	r := newTestResolver(t)
	tests := []struct {
		name            string
		y, mo, d, h, mi int
		ys, yb, ms, mb  int
	}{
		{"before sohan", 2000, 1, 3, 12, 0, 6, 4, 3, 1},   // 기묘년 병자월
		{"after sohan", 2000, 1, 20, 12, 0, 6, 4, 4, 2},   // 기묘년 정축월
		{"before ipchun", 2000, 2, 4, 21, 35, 6, 4, 4, 2}, // still 기묘년
		{"at ipchun", 2000, 2, 4, 21, 36, 7, 5, 5, 3},     // 경진년 무인월
		{"june", 2000, 6, 15, 12, 0, 7, 5, 9, 7},          // 임오월
		{"after daeseol", 2000, 12, 25, 0, 0, 7, 5, 5, 1}, // 무자월
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.y, tt.mo, tt.d, tt.h, tt.mi)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			want := Indices{model.Stem(tt.ys), model.Branch(tt.yb), model.Stem(tt.ms), model.Branch(tt.mb)}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestResolve_BoundaryExactIsNewMonth(t *testing.T) {
	r := newTestResolver(t)
	before, _ := r.Resolve(2000, 3, 5, 15, 37)
	at, _ := r.Resolve(2000, 3, 5, 15, 38)
	if before.MonthBranch != 3 {
		t.Errorf("expected 인 month before 경칩, got %d", before.MonthBranch)
	}
	if at.MonthBranch != 4 {
		t.Errorf("expected 묘 month at 경칩, got %d", at.MonthBranch)
	}
}

func TestResolve_MissingYear(t *testing.T) {
	r := newTestResolver(t)
	_, err := r.Resolve(2001, 5, 1, 12, 0)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	nilResolver := NewResolver(nil)
	if _, err := nilResolver.Resolve(2000, 5, 1, 12, 0); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable without table, got %v", err)
	}
}

func TestResolve_MonthStemClasses(t *testing.T) {
	// The 인 month stem for each year stem class: 갑기→병, 을경→무, 병신→경, 정임→임, 무계→갑.
	want := map[int]model.Stem{1: 3, 6: 3, 2: 5, 7: 5, 3: 7, 8: 7, 4: 9, 9: 9, 5: 1, 10: 1}
	for ys, ms := range want {
		first := mod(ys-1, 5)*2 + 3
		if first > 10 {
			first -= 10
		}
		if model.Stem(first) != ms {
			t.Errorf("year stem %d: 인 month stem %d, want %d", ys, first, ms)
		}
	}
}

func TestLoadShippedTable(t *testing.T) {
	tbl, err := LoadTable("../../data/boundaries.csv")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first, last := tbl.Years()
	if first != 2000 || last != 2021 {
		t.Errorf("expected 2000-2021, got %d-%d", first, last)
	}
	r := NewResolver(tbl)
	// 2021-05-20 is in 신축년 계사월.
	got, err := r.Resolve(2021, 5, 20, 9, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.YearStem != 8 || got.YearBranch != 2 || got.MonthStem != 10 || got.MonthBranch != 6 {
		t.Errorf("unexpected indices %+v", got)
	}
}

func TestReadTable_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":          "# only comments\n",
		"short row":      "200002,42136\n",
		"not numeric":    strings.Replace(row2000, "42136", "x", 1),
		"not increasing": strings.Replace(row2000, "200003,51538", "200001,10000", 1),
	}
	for name, in := range cases {
		if _, err := ReadTable(strings.NewReader(in), 2000); !errors.Is(err, ErrDataUnavailable) {
			t.Errorf("%s: expected ErrDataUnavailable, got %v", name, err)
		}
	}
	if _, err := LoadTable("does-not-exist.csv"); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("missing file: expected ErrDataUnavailable, got %v", err)
	}
}
