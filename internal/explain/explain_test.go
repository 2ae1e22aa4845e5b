package explain

import (
	"reflect"
	"testing"

	"saju-match/internal/model"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		v    model.AfflictionVector
		want []string
	}{
		{"empty", model.AfflictionVector{}, []string{"무난"}},
		{"single", model.AfflictionVector{model.Harm: 2}, []string{"해(害)"}},
		{"ascending", model.AfflictionVector{model.Loner: 1.5, model.IllFortune: 2, model.SixClash: 8}, []string{"흉운(천간충)", "충(沖)", "고신"}},
		{"all", model.AfflictionVector{1, 1, 1, 1, 1, 1, 1, 1}, []string{"흉운(천간충)", "도화", "파(破)", "충(沖)", "해(害)", "원진", "과숙", "고신"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Format(c.v); !reflect.DeepEqual(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestFormat_EverySubset(t *testing.T) {
	for mask := 0; mask < 1<<model.AfflictionCount; mask++ {
		var v model.AfflictionVector
		var want []string
		for i := 0; i < model.AfflictionCount; i++ {
			if mask&(1<<i) != 0 {
				v[i] = 1
				want = append(want, Label(i))
			}
		}
		if mask == 0 {
			want = []string{Unremarkable}
		}
		if got := Format(v); !reflect.DeepEqual(got, want) {
			t.Fatalf("mask %08b: got %v, want %v", mask, got, want)
		}
	}
}

func TestLabel_OutOfRange(t *testing.T) {
	if Label(-1) != "" || Label(model.AfflictionCount) != "" {
		t.Fatal("expected empty label outside the table")
	}
}
