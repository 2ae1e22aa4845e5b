package cli

import (
	"fmt"
	"strings"

	"saju-match/internal/model"
)

// renderTemplate replaces every ${key} in tpl with values[key]. Unknown
// placeholders are left as they are.
func renderTemplate(tpl string, values map[string]string) string {
	res := tpl
	for k, v := range values {
		res = strings.ReplaceAll(res, "${"+k+"}", v)
	}
	return res
}

func num(f float64) string { return fmt.Sprintf("%.2f", f) }

func vectorValues(prefix string, v model.SajuVector) map[string]string {
	return map[string]string{
		prefix + "pillars": v.String(),
		prefix + "year":    model.Pillar(v.YearStem, v.YearBranch),
		prefix + "month":   model.Pillar(v.MonthStem, v.MonthBranch),
		prefix + "day":     model.Pillar(v.DayStem, v.DayBranch),
		prefix + "ints":    strings.Trim(fmt.Sprint(v.Ints()), "[]"),
	}
}

func merge(ms ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range ms {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
