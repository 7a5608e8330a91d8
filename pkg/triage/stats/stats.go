package stats

import "strings"

// Record is a single (disease, symptom, count) co-occurrence observation
// from the source data.
type Record struct {
	Disease string
	Symptom string
	Count   int64
}

// Aggregator accumulates co-occurrence counts across records.
// Disease and symptom names are lower-cased and whitespace-trimmed on
// entry; multiple records for the same pair accumulate by summation.
type Aggregator struct {
	diseaseTotal map[string]int64
	symptomCount map[string]map[string]int64
	symptoms     map[string]struct{}
	diseaseOrder []string // first-seen order, preserved for display
	totalMass    int64
	skipped      int64
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		diseaseTotal: make(map[string]int64),
		symptomCount: make(map[string]map[string]int64),
		symptoms:     make(map[string]struct{}),
	}
}

// Add accumulates one record. Records missing the disease or symptom
// name are skipped and reported as false; accumulation never fails.
func (a *Aggregator) Add(r Record) bool {
	disease := normalize(r.Disease)
	symptom := normalize(r.Symptom)
	if disease == "" || symptom == "" {
		a.skipped++
		return false
	}

	if _, seen := a.diseaseTotal[disease]; !seen {
		a.diseaseOrder = append(a.diseaseOrder, disease)
	}

	counts, ok := a.symptomCount[disease]
	if !ok {
		counts = make(map[string]int64)
		a.symptomCount[disease] = counts
	}

	a.symptoms[symptom] = struct{}{}
	counts[symptom] += r.Count
	a.diseaseTotal[disease] += r.Count
	a.totalMass += r.Count
	return true
}

// DiseaseTotal returns the total co-occurrence mass for a disease.
func (a *Aggregator) DiseaseTotal(disease string) int64 {
	return a.diseaseTotal[disease]
}

// SymptomCount returns the accumulated count for a (disease, symptom)
// pair, 0 for unseen pairs.
func (a *Aggregator) SymptomCount(disease, symptom string) int64 {
	return a.symptomCount[disease][symptom]
}

// Diseases returns disease names in first-seen order.
func (a *Aggregator) Diseases() []string {
	out := make([]string, len(a.diseaseOrder))
	copy(out, a.diseaseOrder)
	return out
}

// Symptoms returns the symptom universe in unspecified order.
func (a *Aggregator) Symptoms() []string {
	out := make([]string, 0, len(a.symptoms))
	for s := range a.symptoms {
		out = append(out, s)
	}
	return out
}

// VocabularySize returns the number of distinct symptoms seen.
func (a *Aggregator) VocabularySize() int {
	return len(a.symptoms)
}

// TotalMass returns the grand total count across all records.
// Informational only; the model itself never reads it.
func (a *Aggregator) TotalMass() int64 {
	return a.totalMass
}

// Skipped returns how many records were rejected for missing names.
func (a *Aggregator) Skipped() int64 {
	return a.skipped
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
