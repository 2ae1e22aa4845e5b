// Package explain renders affliction vectors as labels.
package explain

import "saju-match/internal/model"

// Unremarkable is the single label returned for an empty vector.
const Unremarkable = "무난"

var labels = [model.AfflictionCount]string{
	model.IllFortune:   "흉운(천간충)",
	model.PeachBlossom: "도화",
	model.Destruction:  "파(破)",
	model.SixClash:     "충(沖)",
	model.Harm:         "해(害)",
	model.Resentment:   "원진",
	model.Widow:        "과숙",
	model.Loner:        "고신",
}

// Label returns the label of category i, or "" when i is out of range.
func Label(i int) string {
	if i < 0 || i >= len(labels) {
		return ""
	}
	return labels[i]
}

// Format lists the labels of the non-zero categories in ascending order.
func Format(v model.AfflictionVector) []string {
	var out []string
	for i, x := range v {
		if x > 0 {
			out = append(out, labels[i])
		}
	}
	if len(out) == 0 {
		return []string{Unremarkable}
	}
	return out
}
