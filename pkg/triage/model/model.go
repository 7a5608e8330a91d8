package model

import (
	"sort"

	"github.com/cognicore/triage/pkg/triage/stats"
)

// Model is the immutable trained state: disease priors plus the fully
// materialized smoothed probability table. Built once at startup and
// read-only afterwards, so concurrent lookups need no locking.
type Model struct {
	diseases  []string // first-seen order
	symptoms  []string // sorted ascending
	vocab     map[string]struct{}
	priors    map[string]float64
	probs     map[string]map[string]float64
	totals    map[string]int64
	totalMass int64
}

// Build materializes the smoothed conditional probability table from
// aggregated counts.
//
// P(s|d) = (count[d][s] + 1) / (total[d] + V)
//
// Add-one (Laplace) smoothing over the full vocabulary of V symptoms
// keeps every probability strictly inside (0, 1), including pairs never
// observed together, so the log-space scorer can never hit log(0).
// Every disease × symptom cell is computed here; lookups only read.
func Build(agg *stats.Aggregator) *Model {
	diseases := agg.Diseases()
	symptoms := agg.Symptoms()
	sort.Strings(symptoms)

	m := &Model{
		diseases:  diseases,
		symptoms:  symptoms,
		vocab:     make(map[string]struct{}, len(symptoms)),
		priors:    make(map[string]float64, len(diseases)),
		probs:     make(map[string]map[string]float64, len(diseases)),
		totals:    make(map[string]int64, len(diseases)),
		totalMass: agg.TotalMass(),
	}
	for _, s := range symptoms {
		m.vocab[s] = struct{}{}
	}

	vocabSize := float64(len(symptoms))
	var grand int64
	for _, d := range diseases {
		grand += agg.DiseaseTotal(d)
	}

	for _, d := range diseases {
		total := agg.DiseaseTotal(d)
		m.totals[d] = total

		if grand > 0 {
			m.priors[d] = float64(total) / float64(grand)
		}

		row := make(map[string]float64, len(symptoms))
		for _, s := range symptoms {
			row[s] = (float64(agg.SymptomCount(d, s)) + 1.0) / (float64(total) + vocabSize)
		}
		m.probs[d] = row
	}

	return m
}

// Prob returns P(symptom|disease) and whether the symptom belongs to the
// vocabulary. Callers decide how to floor unknown symptoms.
func (m *Model) Prob(disease, symptom string) (float64, bool) {
	p, ok := m.probs[disease][symptom]
	return p, ok
}

// Prior returns the disease's share of the total co-occurrence mass.
func (m *Model) Prior(disease string) float64 {
	return m.priors[disease]
}

// Diseases returns disease names in first-seen order.
func (m *Model) Diseases() []string {
	out := make([]string, len(m.diseases))
	copy(out, m.diseases)
	return out
}

// Symptoms returns the vocabulary sorted ascending.
func (m *Model) Symptoms() []string {
	out := make([]string, len(m.symptoms))
	copy(out, m.symptoms)
	return out
}

// HasSymptom reports vocabulary membership.
func (m *Model) HasSymptom(symptom string) bool {
	_, ok := m.vocab[symptom]
	return ok
}

// VocabularySize returns the number of distinct symptoms.
func (m *Model) VocabularySize() int {
	return len(m.symptoms)
}

// DiseaseTotal returns the raw co-occurrence mass for a disease.
func (m *Model) DiseaseTotal(disease string) int64 {
	return m.totals[disease]
}

// TotalMass returns the grand total count across all source records.
func (m *Model) TotalMass() int64 {
	return m.totalMass
}
