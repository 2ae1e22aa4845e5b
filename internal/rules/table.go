// Package rules holds the classical affliction rule table and the engine that
// applies it to a pair of people.
package rules

import (
	"fmt"

	"saju-match/internal/model"
)

// Gate restricts a rule to subjects of one gender.
type Gate int

const (
	GateAny Gate = iota
	GateMale
	// GateNonMale admits every gender value other than model.Male.
	GateNonMale
)

// Rule is one entry of the table. Match sees only the subject's own vector.
type Rule struct {
	ID       string
	Category int
	Match    func(model.SajuVector) bool
	Male     float64
	Female   float64
	Gate     Gate
}

func (r Rule) applies(g model.Gender) bool {
	switch r.Gate {
	case GateMale:
		return g == model.Male
	case GateNonMale:
		return g != model.Male
	}
	return true
}

// Penalty returns the constant charged to a subject of gender g.
func (r Rule) Penalty(g model.Gender) float64 {
	if g == model.Male {
		return r.Male
	}
	return r.Female
}

type position int

const (
	posYear position = iota
	posMonth
	posDay
)

var posCode = [...]string{"Y", "M", "D"}

type span struct{ from, to position }

func (s span) String() string { return posCode[s.from] + posCode[s.to] }

// Pairs compared within one person: year/month, month/day, year/day.
var (
	spanYM = span{posYear, posMonth}
	spanMD = span{posMonth, posDay}
	spanYD = span{posYear, posDay}
)

type pairSet [][2]int

func (p pairSet) has(a, b int) bool {
	for _, q := range p {
		if (q[0] == a && q[1] == b) || (q[0] == b && q[1] == a) {
			return true
		}
	}
	return false
}

var (
	stemClashes = pairSet{{1, 7}, {2, 8}, {3, 9}, {4, 10}}
	destruction = pairSet{{1, 10}, {2, 5}, {3, 12}, {4, 7}, {6, 9}, {8, 11}}
	harms       = pairSet{{1, 8}, {2, 7}, {3, 6}, {4, 5}, {9, 12}, {10, 11}}
	resentments = pairSet{{1, 8}, {2, 7}, {3, 10}, {4, 9}, {5, 12}, {6, 11}}
)

// peachOf is indexed by branch%4, which identifies the 삼합 group:
// 해묘미→자, 신자진→유, 사유축→오, 인오술→묘.
var peachOf = [4]model.Branch{1, 10, 7, 4}

// season groups 해자축, 인묘진, 사오미, 신유술 as 0..3.
func season(b model.Branch) int { return int(b%12) / 3 }

var (
	widowOf = [4]model.Branch{11, 2, 5, 8}
	lonerOf = [4]model.Branch{3, 6, 9, 12}
)

func stemPair(set pairSet, s span) func(model.SajuVector) bool {
	return func(v model.SajuVector) bool {
		st := v.Stems()
		return set.has(int(st[s.from]), int(st[s.to]))
	}
}

func branchPair(set pairSet, s span) func(model.SajuVector) bool {
	return func(v model.SajuVector) bool {
		br := v.Branches()
		return set.has(int(br[s.from]), int(br[s.to]))
	}
}

func branchClash(s span) func(model.SajuVector) bool {
	return func(v model.SajuVector) bool {
		br := v.Branches()
		d := int(br[s.from]) - int(br[s.to])
		return d == 6 || d == -6
	}
}

// derived matches when the branch at s.to equals f applied to the branch at s.from.
func derived(f func(model.Branch) model.Branch, s span) func(model.SajuVector) bool {
	return func(v model.SajuVector) bool {
		br := v.Branches()
		return f(br[s.from]) == br[s.to]
	}
}

func peach(b model.Branch) model.Branch { return peachOf[b%4] }
func widow(b model.Branch) model.Branch { return widowOf[season(b)] }
func loner(b model.Branch) model.Branch { return lonerOf[season(b)] }

func id(family string, s span) string { return fmt.Sprintf("%s/%s", family, s) }

var table = buildTable()

func buildTable() []Rule {
	var t []Rule
	for _, s := range []span{spanYM, spanMD, spanYD} {
		t = append(t, Rule{ID: id("stem-clash", s), Category: model.IllFortune, Match: stemPair(stemClashes, s), Male: 2.0, Female: 2.5})
	}
	for _, s := range []span{spanYM, spanYD, {posDay, posYear}, {posDay, posMonth}} {
		t = append(t, Rule{ID: id("peach", s), Category: model.PeachBlossom, Match: derived(peach, s), Male: 1.5, Female: 3.0})
	}
	for _, s := range []span{spanYM, spanMD, spanYD} {
		t = append(t, Rule{ID: id("destruction", s), Category: model.Destruction, Match: branchPair(destruction, s), Male: 2.0, Female: 2.0})
	}
	clashTiers := []struct {
		s            span
		male, female float64
	}{
		{spanYM, 3.0, 3.5},
		{spanMD, 5.0, 5.5},
		{spanYD, 4.0, 4.5},
	}
	for _, c := range clashTiers {
		t = append(t, Rule{ID: id("clash", c.s), Category: model.SixClash, Match: branchClash(c.s), Male: c.male, Female: c.female})
	}
	for _, s := range []span{spanYM, spanMD, spanYD} {
		t = append(t, Rule{ID: id("harm", s), Category: model.Harm, Match: branchPair(harms, s), Male: 2.0, Female: 2.5})
	}
	for _, s := range []span{spanYM, spanMD, spanYD} {
		t = append(t, Rule{ID: id("resentment", s), Category: model.Resentment, Match: branchPair(resentments, s), Male: 2.5, Female: 3.0})
	}
	lonely := []struct {
		s            span
		widow, loner float64
	}{
		{spanYM, 3.0, 2.5},
		{spanYD, 4.0, 3.5},
		{span{posDay, posYear}, 2.0, 1.5},
	}
	for _, l := range lonely {
		t = append(t, Rule{ID: id("widow", l.s), Category: model.Widow, Match: derived(widow, l.s), Female: l.widow, Gate: GateNonMale})
	}
	for _, l := range lonely {
		t = append(t, Rule{ID: id("loner", l.s), Category: model.Loner, Match: derived(loner, l.s), Male: l.loner, Gate: GateMale})
	}
	return t
}

// Table returns a copy of the rule table in evaluation order.
func Table() []Rule {
	out := make([]Rule, len(table))
	copy(out, table)
	return out
}
