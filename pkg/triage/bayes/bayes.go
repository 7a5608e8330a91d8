package bayes

import (
	"math"
	"sort"

	"github.com/cognicore/triage/pkg/triage/model"
)

// Epsilon is the numerical floor used throughout scoring: it prevents
// log(0) on zero priors and stands in for P(s|d) when a requested
// symptom was never seen in training data.
const Epsilon = 1e-9

// Observation maps a symptom to 1 (present) or 0 (explicitly absent).
// Symptoms missing from the map are unknown, not absent.
type Observation map[string]int

// Ranked is one disease with its posterior probability.
type Ranked struct {
	Disease     string  `json:"disease"`
	Probability float64 `json:"probability"`
}

// Scorer ranks diseases by posterior probability in log space.
type Scorer struct {
	model *model.Model
}

// NewScorer creates a scorer over an immutable model
func NewScorer(m *model.Model) *Scorer {
	return &Scorer{model: m}
}

// Rank computes the posterior distribution over all diseases.
//
// logp(d) = log(prior(d)+ε) + Σ v==1 ? log(P(s|d)+ε) : log((1-P(s|d))+ε)
//
// Log scores are converted back to probabilities with the stable-softmax
// pattern: subtract the maximum before exponentiating so the largest
// term is exp(0), then normalize. The result always sums to 1 and is
// sorted descending; exact ties keep first-seen disease order.
//
// An empty disease universe yields an empty ranking, as does a universe
// whose total co-occurrence mass is zero: with no mass there are no
// priors to rank on.
func (s *Scorer) Rank(obs Observation) []Ranked {
	diseases := s.model.Diseases()
	if len(diseases) == 0 || s.model.TotalMass() == 0 {
		return nil
	}

	logps := make([]float64, len(diseases))
	for i, d := range diseases {
		logp := math.Log(s.model.Prior(d) + Epsilon)
		for sym, v := range obs {
			p, known := s.model.Prob(d, sym)
			if !known {
				p = Epsilon
			}
			if v == 1 {
				logp += math.Log(p + Epsilon)
			} else {
				logp += math.Log((1 - p) + Epsilon)
			}
		}
		logps[i] = logp
	}

	maxLog := logps[0]
	for _, lp := range logps[1:] {
		if lp > maxLog {
			maxLog = lp
		}
	}

	exps := make([]float64, len(logps))
	sum := 0.0
	for i, lp := range logps {
		exps[i] = math.Exp(lp - maxLog)
		sum += exps[i]
	}
	if sum == 0 {
		sum = Epsilon
	}

	out := make([]Ranked, len(diseases))
	for i, d := range diseases {
		out[i] = Ranked{Disease: d, Probability: exps[i] / sum}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	return out
}
