package bayes

import (
	"math"
	"testing"

	"github.com/cognicore/triage/pkg/triage/model"
	"github.com/cognicore/triage/pkg/triage/stats"
)

func buildTestModel() *model.Model {
	agg := stats.NewAggregator()
	records := []stats.Record{
		{Disease: "flu", Symptom: "fever", Count: 10},
		{Disease: "flu", Symptom: "cough", Count: 8},
		{Disease: "cold", Symptom: "cough", Count: 9},
		{Disease: "cold", Symptom: "sneeze", Count: 6},
	}
	for _, r := range records {
		agg.Add(r)
	}
	return model.Build(agg)
}

func sumProbabilities(ranked []Ranked) float64 {
	sum := 0.0
	for _, r := range ranked {
		sum += r.Probability
	}
	return sum
}

func TestRankSumsToOne(t *testing.T) {
	scorer := NewScorer(buildTestModel())

	for _, obs := range []Observation{
		{},
		{"fever": 1},
		{"fever": 1, "cough": 0},
		{"fever": 1, "cough": 1, "sneeze": 0},
	} {
		ranked := scorer.Rank(obs)
		if sum := sumProbabilities(ranked); math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("obs %v: probabilities sum to %v, want 1", obs, sum)
		}
	}
}

func TestRankFeverFavorsFlu(t *testing.T) {
	scorer := NewScorer(buildTestModel())

	ranked := scorer.Rank(Observation{"fever": 1})
	if len(ranked) != 2 {
		t.Fatalf("expected 2 diseases, got %d", len(ranked))
	}
	if ranked[0].Disease != "flu" {
		t.Errorf("expected flu first for fever, got %s", ranked[0].Disease)
	}
	if ranked[0].Probability <= ranked[1].Probability {
		t.Error("ranking must be descending")
	}
}

func TestRankEmptyObservationUsesPriors(t *testing.T) {
	scorer := NewScorer(buildTestModel())

	ranked := scorer.Rank(Observation{})
	if ranked[0].Disease != "flu" {
		t.Errorf("expected flu first on priors alone, got %s", ranked[0].Disease)
	}
	if math.Abs(ranked[0].Probability-18.0/33.0) > 1e-6 {
		t.Errorf("expected prior 18/33, got %v", ranked[0].Probability)
	}
	if math.Abs(ranked[1].Probability-15.0/33.0) > 1e-6 {
		t.Errorf("expected prior 15/33, got %v", ranked[1].Probability)
	}
}

func TestRankSingleDisease(t *testing.T) {
	agg := stats.NewAggregator()
	agg.Add(stats.Record{Disease: "flu", Symptom: "fever", Count: 3})
	scorer := NewScorer(model.Build(agg))

	for _, obs := range []Observation{{}, {"fever": 1}, {"unknown": 0}} {
		ranked := scorer.Rank(obs)
		if len(ranked) != 1 {
			t.Fatalf("expected 1 disease, got %d", len(ranked))
		}
		if ranked[0].Probability != 1.0 {
			t.Errorf("single disease must get probability 1, got %v", ranked[0].Probability)
		}
	}
}

func TestRankZeroTotalMass(t *testing.T) {
	agg := stats.NewAggregator()
	agg.Add(stats.Record{Disease: "flu", Symptom: "fever", Count: 0})
	agg.Add(stats.Record{Disease: "cold", Symptom: "cough", Count: 0})
	scorer := NewScorer(model.Build(agg))

	// Diseases exist but carry no mass at all, so there is nothing to
	// rank on; the ranking is empty rather than uniform.
	if ranked := scorer.Rank(Observation{"fever": 1}); len(ranked) != 0 {
		t.Errorf("expected empty ranking with zero total mass, got %v", ranked)
	}
}

func TestRankEmptyDiseaseUniverse(t *testing.T) {
	scorer := NewScorer(model.Build(stats.NewAggregator()))

	if ranked := scorer.Rank(Observation{"fever": 1}); len(ranked) != 0 {
		t.Errorf("expected empty ranking, got %v", ranked)
	}
}

func TestRankUnknownSymptomUsesFloor(t *testing.T) {
	scorer := NewScorer(buildTestModel())

	// Never-seen symptom must not fail and must still normalize.
	ranked := scorer.Rank(Observation{"martian rash": 1})
	if len(ranked) != 2 {
		t.Fatalf("expected 2 diseases, got %d", len(ranked))
	}
	if sum := sumProbabilities(ranked); math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}

	ranked = scorer.Rank(Observation{"martian rash": 0})
	if sum := sumProbabilities(ranked); math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
}

func TestRankTiesKeepFirstSeenOrder(t *testing.T) {
	agg := stats.NewAggregator()
	agg.Add(stats.Record{Disease: "beta", Symptom: "ache", Count: 5})
	agg.Add(stats.Record{Disease: "alpha", Symptom: "ache", Count: 5})
	scorer := NewScorer(model.Build(agg))

	ranked := scorer.Rank(Observation{"ache": 1})
	if ranked[0].Disease != "beta" || ranked[1].Disease != "alpha" {
		t.Errorf("exact ties must keep first-seen order, got %v", ranked)
	}
}

func TestRankExplicitAbsenceLowersProbability(t *testing.T) {
	scorer := NewScorer(buildTestModel())

	withSneeze := scorer.Rank(Observation{"sneeze": 1})
	withoutSneeze := scorer.Rank(Observation{"sneeze": 0})

	probFor := func(ranked []Ranked, d string) float64 {
		for _, r := range ranked {
			if r.Disease == d {
				return r.Probability
			}
		}
		t.Fatalf("disease %s missing from ranking", d)
		return 0
	}

	if probFor(withSneeze, "cold") <= probFor(withoutSneeze, "cold") {
		t.Error("observed sneeze should favor cold over explicit absence")
	}
}
