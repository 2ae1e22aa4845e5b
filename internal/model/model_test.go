package model

import (
	"math"
	"testing"
)

func TestParseGanji(t *testing.T) {
	tests := []struct {
		code   string
		stem   Stem
		branch Branch
	}{
		{"갑자", 1, 1},
		{"갑자(甲子)", 1, 1},
		{"무오(戊午)", 5, 7},
		{"신신", 8, 9},
		{"癸亥", 10, 12},
		{" 경진 ", 7, 5},
	}
	for _, tt := range tests {
		s, b, err := ParseGanji(tt.code)
		if err != nil {
			t.Fatalf("ParseGanji(%q): %v", tt.code, err)
		}
		if s != tt.stem || b != tt.branch {
			t.Errorf("ParseGanji(%q) = %d,%d want %d,%d", tt.code, s, b, tt.stem, tt.branch)
		}
	}
}

func TestParseGanji_Invalid(t *testing.T) {
	for _, code := range []string{"", "갑", "가나", "(甲子)"} {
		if _, _, err := ParseGanji(code); err == nil {
			t.Errorf("ParseGanji(%q): expected error", code)
		}
	}
}

func TestPillarRoundTrip(t *testing.T) {
	for s := Stem(1); s <= 10; s++ {
		for b := Branch(1); b <= 12; b++ {
			gs, gb, err := ParseGanji(Pillar(s, b))
			if err != nil || gs != s || gb != b {
				t.Fatalf("Pillar(%d,%d) = %q parsed back as %d,%d err=%v", s, b, Pillar(s, b), gs, gb, err)
			}
		}
	}
}

func TestElementCycles(t *testing.T) {
	if !Wood.Generates(Fire) || !Water.Generates(Wood) {
		t.Error("generation cycle broken")
	}
	if !Wood.Controls(Earth) || !Metal.Controls(Wood) || !Water.Controls(Fire) {
		t.Error("control cycle broken")
	}
	if Fire.Generates(Wood) {
		t.Error("fire should not generate wood")
	}
}

func TestPolarity(t *testing.T) {
	if Stem(1).Polarity() != Yang || Stem(2).Polarity() != Yin || Stem(10).Polarity() != Yin {
		t.Error("stem polarity should alternate starting at yang")
	}
	if Branch(11).Polarity() != Yang || Branch(12).Polarity() != Yin {
		t.Error("branch polarity should alternate starting at yang")
	}
	if Branch(1).Element() != Water || Branch(2).Element() != Earth || Branch(6).Element() != Fire {
		t.Error("branch element table mismatch")
	}
}

func TestSubScoresRawIgnoresMonthStem(t *testing.T) {
	base := SubScores{YearStem: 1, YearBranch: 1, MonthStem: 1, MonthBranch: 1, DayStem: 1, DayBranch: 1}
	if got := base.Raw(); math.Abs(got-12.1) > 1e-9 {
		t.Errorf("expected 12.1, got %v", got)
	}
	changed := base
	changed.MonthStem = 1000
	if changed.Raw() != base.Raw() {
		t.Error("month stem sub-score must not affect the raw score")
	}
}

func TestSajuVectorValid(t *testing.T) {
	v := SajuVector{7, 5, 5, 3, 1, 1}
	if !v.Valid() {
		t.Error("expected valid vector")
	}
	if v.String() != "경진(庚辰) 무인(戊寅) 갑자(甲子)" {
		t.Errorf("unexpected string %q", v.String())
	}
	v.MonthBranch = 13
	if v.Valid() {
		t.Error("branch 13 should be invalid")
	}
}

func TestParseGender(t *testing.T) {
	if g, _ := ParseGender("여"); g != Female {
		t.Errorf("expected female, got %v", g)
	}
	if g, _ := ParseGender("M"); g != Male {
		t.Errorf("expected male, got %v", g)
	}
	if _, err := ParseGender("x"); err == nil {
		t.Error("expected error")
	}
}
