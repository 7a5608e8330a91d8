package advise

import (
	"github.com/cognicore/triage/pkg/triage/bayes"
	"github.com/cognicore/triage/pkg/triage/model"
)

// TopDiseases is how many leading candidates the advisor compares.
const TopDiseases = 5

// Advisor picks the unobserved symptom most likely to separate the
// current leading hypotheses.
type Advisor struct {
	model *model.Model
}

// NewAdvisor creates an advisor over an immutable model
func NewAdvisor(m *model.Model) *Advisor {
	return &Advisor{model: m}
}

// Suggest returns the symptom not yet covered by the observation whose
// conditional probability has the greatest population variance across
// the top-ranked diseases. High variance across the leading hypotheses
// marks the symptom most likely to sharply separate them, a cheap
// stand-in for expected information gain.
//
// The second return is false when there is nothing left to ask: no
// ranked diseases, or the observation already covers the vocabulary.
// That is a normal terminal state, not an error.
func (a *Advisor) Suggest(obs bayes.Observation, ranked []bayes.Ranked) (string, bool) {
	if len(ranked) == 0 {
		return "", false
	}
	if len(obs) >= a.model.VocabularySize() && coversAll(obs, a.model.Symptoms()) {
		return "", false
	}

	top := ranked
	if len(top) > TopDiseases {
		top = top[:TopDiseases]
	}

	best := ""
	bestVar := -1.0
	for _, sym := range a.model.Symptoms() {
		if _, seen := obs[sym]; seen {
			continue
		}

		// Population variance (divide by n, not n-1) of P(sym|d)
		// across the top candidates. Strict > keeps the first
		// candidate in sorted symptom order on exact ties.
		mean := 0.0
		for _, r := range top {
			p, _ := a.model.Prob(r.Disease, sym)
			mean += p
		}
		mean /= float64(len(top))

		variance := 0.0
		for _, r := range top {
			p, _ := a.model.Prob(r.Disease, sym)
			variance += (p - mean) * (p - mean)
		}
		variance /= float64(len(top))

		if variance > bestVar {
			bestVar = variance
			best = sym
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}

func coversAll(obs bayes.Observation, symptoms []string) bool {
	for _, s := range symptoms {
		if _, ok := obs[s]; !ok {
			return false
		}
	}
	return true
}
