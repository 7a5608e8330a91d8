// Package triage ranks candidate diseases for a set of observed
// symptoms using a naive-Bayes model built from co-occurrence counts,
// and suggests which unasked symptom would best separate the leading
// candidates.
package triage

import (
	"log"
	"strings"

	"github.com/cognicore/triage/pkg/triage/advise"
	"github.com/cognicore/triage/pkg/triage/bayes"
	"github.com/cognicore/triage/pkg/triage/ingest"
	"github.com/cognicore/triage/pkg/triage/model"
	"github.com/cognicore/triage/pkg/triage/stats"
)

// DefaultTopK is how many diagnoses a Diagnose call returns.
const DefaultTopK = 5

// DefaultSuggestLimit caps prefix-based symptom suggestions.
const DefaultSuggestLimit = 10

// Engine is the read-only query facade over a trained model. All state
// is fixed at construction, so a single Engine serves concurrent
// requests without coordination.
type Engine struct {
	model   *model.Model
	scorer  *bayes.Scorer
	advisor *advise.Advisor
	topK    int
}

// Options configures an Engine.
type Options struct {
	// TopK limits the diagnoses returned per query. Defaults to 5.
	TopK int
}

// BuildModel reads the source data file, trains the model and returns a
// ready Engine. The only failure mode is a missing or unusable source
// file; callers should treat that as fatal before serving traffic.
func BuildModel(path string, opts Options) (*Engine, error) {
	agg := stats.NewAggregator()
	if err := ingest.ReadFile(path, agg); err != nil {
		return nil, err
	}

	m := model.Build(agg)
	log.Printf("triage: model ready, %d diseases, %d symptoms, total mass %d",
		len(m.Diseases()), m.VocabularySize(), m.TotalMass())
	return NewEngine(m, opts), nil
}

// NewEngine wraps an already-built model.
func NewEngine(m *model.Model, opts Options) *Engine {
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Engine{
		model:   m,
		scorer:  bayes.NewScorer(m),
		advisor: advise.NewAdvisor(m),
		topK:    topK,
	}
}

// ListSymptoms returns the full vocabulary, sorted ascending.
func (e *Engine) ListSymptoms() []string {
	return e.model.Symptoms()
}

// SuggestSymptoms returns up to limit vocabulary entries starting with
// prefix (case-insensitive). A limit <= 0 falls back to the default.
func (e *Engine) SuggestSymptoms(prefix string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	// Vocabulary is already sorted, so matches come out sorted too.
	matches := make([]string, 0, limit)
	for _, s := range e.model.Symptoms() {
		if strings.HasPrefix(s, prefix) {
			matches = append(matches, s)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// Diagnosis is the result of one Diagnose call: the top-ranked diseases
// and at most one suggested follow-up symptom.
type Diagnosis struct {
	Ranked      []bayes.Ranked `json:"possible_diseases"`
	Suggestions []string       `json:"next_symptom_suggestions"`
}

// Diagnose lower-cases the observation keys, ranks every disease and
// returns the top slice plus the advisor's suggestion. It never fails:
// unknown symptoms score at the floor probability and an empty disease
// universe yields an empty ranking.
func (e *Engine) Diagnose(obs bayes.Observation) Diagnosis {
	norm := make(bayes.Observation, len(obs))
	for k, v := range obs {
		norm[strings.ToLower(strings.TrimSpace(k))] = v
	}

	ranked := e.scorer.Rank(norm)

	top := ranked
	if len(top) > e.topK {
		top = top[:e.topK]
	}

	d := Diagnosis{Ranked: top, Suggestions: []string{}}
	if s, ok := e.advisor.Suggest(norm, ranked); ok {
		d.Suggestions = append(d.Suggestions, s)
	}
	return d
}

// Model exposes the underlying immutable model for stats tooling.
func (e *Engine) Model() *model.Model {
	return e.model
}
