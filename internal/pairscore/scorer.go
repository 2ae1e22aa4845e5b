// Package pairscore scores the compatibility of two stems or two branches.
package pairscore

import "saju-match/internal/model"

// Scorer maps a pair of stems or branches to a compatibility contribution.
// Implementations must be deterministic and safe for concurrent use.
type Scorer interface {
	ScoreStem(a, b model.Stem) float64
	ScoreBranch(a, b model.Branch) float64
}

// SubScores runs the six pillar comparisons between two people.
func SubScores(s Scorer, a, b model.SajuVector) model.SubScores {
	return model.SubScores{
		YearStem:    s.ScoreStem(a.YearStem, b.YearStem),
		YearBranch:  s.ScoreBranch(a.YearBranch, b.YearBranch),
		MonthStem:   s.ScoreStem(a.MonthStem, b.MonthStem),
		MonthBranch: s.ScoreBranch(a.MonthBranch, b.MonthBranch),
		DayStem:     s.ScoreStem(a.DayStem, b.DayStem),
		DayBranch:   s.ScoreBranch(a.DayBranch, b.DayBranch),
	}
}

// Table is a fixed lookup scorer, mostly useful in tests.
type Table struct {
	Stems    [11][11]float64
	Branches [13][13]float64
}

func (t *Table) ScoreStem(a, b model.Stem) float64 { return t.Stems[a][b] }

func (t *Table) ScoreBranch(a, b model.Branch) float64 { return t.Branches[a][b] }

// Constant returns a table scorer that gives every pair the same value.
func Constant(v float64) *Table {
	t := &Table{}
	for i := range t.Stems {
		for j := range t.Stems[i] {
			t.Stems[i][j] = v
		}
	}
	for i := range t.Branches {
		for j := range t.Branches[i] {
			t.Branches[i][j] = v
		}
	}
	return t
}
