package risk

import (
	"math"
	"testing"

	"saju-match/internal/model"
)

func TestClassify(t *testing.T) {
	var none model.AfflictionVector
	one := model.AfflictionVector{model.SixClash: 5}

	cases := []struct {
		name          string
		raw, adjusted float64
		a, b          model.AfflictionVector
		stress        float64
		warning       model.Warning
	}{
		{"no afflictions", 80, 80, none, none, 13, model.OK},
		{"both afflicted", 80, 30, one, one, 103, model.AtRisk},
		{"one afflicted", 80, 30, one, none, 63, model.AtRisk},
		{"adjusted above ceiling", 80, 36, one, one, 13 + 44*1.8, model.OK},
		{"adjusted at ceiling", 80, 35, one, none, 58, model.AtRisk},
		{"stress below floor", 40, 35, none, one, 38, model.OK},
		{"penalties push stress over floor", 70, 35, none, none, 53, model.AtRisk},
		{"high raw low delta", 100, 99, none, none, 4, model.OK},
		{"stress just under floor", 35, 35, none, none, 35.5, model.OK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stress, w := Classify(c.raw, c.adjusted, c.a, c.b)
			if math.Abs(stress-c.stress) > 1e-9 || w != c.warning {
				t.Errorf("got (%v, %s), want (%v, %s)", stress, w, c.stress, c.warning)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	a := model.AfflictionVector{1.5, 0, 2, 0, 0, 3, 0, 0}
	b := model.AfflictionVector{0, 0, 0, 4.5, 0, 0, 0, 2.5}
	s1, w1 := Classify(71.3, 52.9, a, b)
	for i := 0; i < 100; i++ {
		s2, w2 := Classify(71.3, 52.9, a, b)
		if s1 != s2 || w1 != w2 {
			t.Fatalf("call %d differs: (%v, %s) vs (%v, %s)", i, s2, w2, s1, w1)
		}
	}
}

func TestBundle(t *testing.T) {
	b := Bundle(80, 80, model.AfflictionVector{}, model.AfflictionVector{})
	want := model.ScoreBundle{Raw: 80, Adjusted: 80, Stress: 13, Warning: model.OK}
	if b != want {
		t.Fatalf("got %+v, want %+v", b, want)
	}
}
