package pairscore

import "saju-match/internal/model"

const (
	scoreCombine  = 10.0
	scoreTriad    = 9.0
	scoreGenerate = 8.5
	scoreSame     = 6.0
	scoreControl  = 3.5
	scoreClash    = 2.0
	polarityBonus = 0.5
	maxPairScore  = 10.0
)

// ElementScorer is a hand-tuned scorer built on the five-element cycles. It
// returns values in [0, 10] and is symmetric in its arguments.
type ElementScorer struct{}

func (ElementScorer) ScoreStem(a, b model.Stem) float64 {
	if diff(int(a), int(b)) == 5 {
		return scoreCombine // 천간합: 갑기, 을경, 병신, 정임, 무계
	}
	return elementScore(a.Element(), b.Element(), a.Polarity() != b.Polarity())
}

func (ElementScorer) ScoreBranch(a, b model.Branch) float64 {
	switch {
	case sixHarmony(a, b):
		return scoreCombine
	case a != b && a%4 == b%4:
		return scoreTriad
	case diff(int(a), int(b)) == 6:
		return scoreClash
	}
	return elementScore(a.Element(), b.Element(), a.Polarity() != b.Polarity())
}

func elementScore(x, y model.Element, mixed bool) float64 {
	var s float64
	switch {
	case x == y:
		s = scoreSame
	case x.Generates(y) || y.Generates(x):
		s = scoreGenerate
	default:
		s = scoreControl
	}
	if mixed {
		s += polarityBonus
	}
	if s > maxPairScore {
		s = maxPairScore
	}
	return s
}

// sixHarmony reports the 육합 pairs 자축, 인해, 묘술, 진유, 사신, 오미.
func sixHarmony(a, b model.Branch) bool {
	if a > b {
		a, b = b, a
	}
	if a == 1 && b == 2 {
		return true
	}
	return a+b == 15 && a >= 3 && a <= 7
}

func diff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
