package calendar

import "saju-match/internal/model"

// Indices are the year and month pillars of an instant.
type Indices struct {
	YearStem    model.Stem
	YearBranch  model.Branch
	MonthStem   model.Stem
	MonthBranch model.Branch
}

type Resolver struct {
	table *Table
}

func NewResolver(t *Table) *Resolver {
	return &Resolver{table: t}
}

// Resolve maps a solar date and time to year and month pillars. The year
// turns over at 입춘 and months at the twelve 절기 boundaries; an instant
// exactly on a boundary belongs to the new period.
func (r *Resolver) Resolve(year, month, day, hour, minute int) (Indices, error) {
	row, err := r.table.Row(year)
	if err != nil {
		return Indices{}, err
	}
	at := At(year, month, day, hour, minute)

	stem := mod(year-1984, 10) + 1
	branch := mod(year-1984, 12) + 1
	if at.Before(row.Year) {
		stem = mod(stem-2, 10) + 1
		branch = mod(branch-2, 12) + 1
	}

	k := 0
	for _, b := range row.Months {
		if at.Before(b) {
			break
		}
		k++
	}
	// Before 소한 the instant is still in the 자 month; boundary i opens
	// branch (i+1)%12+1, so 소한 opens 축 and 대설 opens 자.
	monthBranch := 1
	if k > 0 {
		monthBranch = k%12 + 1
	}

	first := mod(stem-1, 5)*2 + 3
	if first > 10 {
		first -= 10
	}
	offset := mod(monthBranch-3, 12)
	monthStem := mod(first-1+offset, 10) + 1

	return Indices{
		YearStem:    model.Stem(stem),
		YearBranch:  model.Branch(branch),
		MonthStem:   model.Stem(monthStem),
		MonthBranch: model.Branch(monthBranch),
	}, nil
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
