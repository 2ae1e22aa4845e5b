package lunar

import (
	"context"

	"saju-match/internal/model"
)

// Offline derives the day code from the Julian day number.
type Offline struct{}

func (Offline) DayCode(ctx context.Context, year, month, day int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, b := DayPillar(year, month, day)
	return model.Pillar(s, b), nil
}

// DayPillar returns the day stem and branch of a Gregorian date.
func DayPillar(year, month, day int) (model.Stem, model.Branch) {
	idx := (julianDay(year, month, day) + 49) % 60
	return model.Stem(idx%10 + 1), model.Branch(idx%12 + 1)
}

func julianDay(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}
