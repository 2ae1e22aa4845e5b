// Package risk derives the stress score and warning label of a pairing.
package risk

import "saju-match/internal/model"

const (
	stressBase      = 106.0
	mutualAmplifier = 1.8
	riskScoreCeil   = 35.0
	riskStressFloor = 40.0
)

// Classify is pure. The penalty delta is amplified when both people carry
// at least one affliction.
func Classify(raw, adjusted float64, a, b model.AfflictionVector) (float64, model.Warning) {
	delta := raw - adjusted
	if a.Sum() > 0 && b.Sum() > 0 {
		delta *= mutualAmplifier
	}
	stress := 0.5*(stressBase-raw) + delta
	if adjusted <= riskScoreCeil && stress >= riskStressFloor {
		return stress, model.AtRisk
	}
	return stress, model.OK
}

// Bundle assembles the full score bundle.
func Bundle(raw, adjusted float64, a, b model.AfflictionVector) model.ScoreBundle {
	stress, w := Classify(raw, adjusted, a, b)
	return model.ScoreBundle{Raw: raw, Adjusted: adjusted, Stress: stress, Warning: w}
}
