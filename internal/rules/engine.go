package rules

import "saju-match/internal/model"

type Person int

const (
	PersonA Person = iota
	PersonB
)

func (p Person) String() string {
	if p == PersonB {
		return "B"
	}
	return "A"
}

// Hit records one matched rule.
type Hit struct {
	Person   Person  `json:"person"`
	RuleID   string  `json:"rule"`
	Category int     `json:"category"`
	Penalty  float64 `json:"penalty"`
}

type Result struct {
	Adjusted    float64
	AfflictionA model.AfflictionVector
	AfflictionB model.AfflictionVector
	Hits        []Hit
}

// Evaluate charges every matching rule against raw. Each person's
// afflictions come from their own vector and gender only, and the result
// never exceeds raw.
func Evaluate(a, b model.SajuVector, ga, gb model.Gender, raw float64) Result {
	res := Result{Adjusted: raw}
	var hitsA, hitsB []Hit
	res.AfflictionA, hitsA = Afflictions(PersonA, a, ga)
	res.AfflictionB, hitsB = Afflictions(PersonB, b, gb)
	res.Hits = append(hitsA, hitsB...)
	for _, h := range res.Hits {
		res.Adjusted -= h.Penalty
	}
	return res
}

// Afflictions evaluates the table for a single subject.
func Afflictions(p Person, v model.SajuVector, g model.Gender) (model.AfflictionVector, []Hit) {
	var out model.AfflictionVector
	var hits []Hit
	for _, r := range table {
		if !r.applies(g) || !r.Match(v) {
			continue
		}
		pen := r.Penalty(g)
		if pen <= 0 {
			continue
		}
		out[r.Category] += pen
		hits = append(hits, Hit{Person: p, RuleID: r.ID, Category: r.Category, Penalty: pen})
	}
	return out, hits
}
