package model

import "fmt"

type Gender int

const (
	Male   Gender = 1
	Female Gender = 2
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "M"
	case Female:
		return "F"
	default:
		return fmt.Sprintf("gender(%d)", int(g))
	}
}

// ParseGender accepts M/F, male/female and the Korean 남/여.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "M", "m", "male", "MALE", "남", "남자", "1":
		return Male, nil
	case "F", "f", "female", "FEMALE", "여", "여자", "2":
		return Female, nil
	}
	return 0, fmt.Errorf("unknown gender %q", s)
}

// SajuVector is the three pillars of one person: year, month and day,
// each a (stem, branch) pair.
type SajuVector struct {
	YearStem    Stem   `json:"year_stem"`
	YearBranch  Branch `json:"year_branch"`
	MonthStem   Stem   `json:"month_stem"`
	MonthBranch Branch `json:"month_branch"`
	DayStem     Stem   `json:"day_stem"`
	DayBranch   Branch `json:"day_branch"`
}

func (v SajuVector) Stems() [3]Stem {
	return [3]Stem{v.YearStem, v.MonthStem, v.DayStem}
}

func (v SajuVector) Branches() [3]Branch {
	return [3]Branch{v.YearBranch, v.MonthBranch, v.DayBranch}
}

func (v SajuVector) Ints() [6]int {
	return [6]int{
		int(v.YearStem), int(v.YearBranch),
		int(v.MonthStem), int(v.MonthBranch),
		int(v.DayStem), int(v.DayBranch),
	}
}

func (v SajuVector) Valid() bool {
	for _, s := range v.Stems() {
		if !s.Valid() {
			return false
		}
	}
	for _, b := range v.Branches() {
		if !b.Valid() {
			return false
		}
	}
	return true
}

// String renders the pillars as "경진 무인 갑자".
func (v SajuVector) String() string {
	return Pillar(v.YearStem, v.YearBranch) + " " +
		Pillar(v.MonthStem, v.MonthBranch) + " " +
		Pillar(v.DayStem, v.DayBranch)
}

// AfflictionCount is the number of classical affliction categories.
const AfflictionCount = 8

const (
	IllFortune = iota
	PeachBlossom
	Destruction
	SixClash
	Harm
	Resentment
	Widow
	Loner
)

type AfflictionVector [AfflictionCount]float64

func (a AfflictionVector) Sum() float64 {
	var s float64
	for _, v := range a {
		s += v
	}
	return s
}

type Warning int

const (
	OK Warning = iota
	AtRisk
)

func (w Warning) String() string {
	if w == AtRisk {
		return "AT_RISK"
	}
	return "OK"
}

func (w Warning) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

type SubScores struct {
	YearStem    float64 `json:"year_stem"`
	YearBranch  float64 `json:"year_branch"`
	MonthStem   float64 `json:"month_stem"`
	MonthBranch float64 `json:"month_branch"`
	DayStem     float64 `json:"day_stem"`
	DayBranch   float64 `json:"day_branch"`
}

// Raw combines the sub-scores into the unadjusted compatibility score.
// MonthStem is reported but not part of the sum.
func (s SubScores) Raw() float64 {
	return 0.6*s.YearStem + 4.5*s.DayStem + 1.0*s.YearBranch + 1.5*s.MonthBranch + 4.5*s.DayBranch
}

type ScoreBundle struct {
	Raw      float64 `json:"raw_score"`
	Adjusted float64 `json:"adjusted_score"`
	Stress   float64 `json:"stress_score"`
	Warning  Warning `json:"warning"`
}
