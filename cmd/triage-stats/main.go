package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/cognicore/triage/pkg/triage"
)

func main() {
	var (
		dataPath = flag.String("data", "", "Source data TSV (required)")
		top      = flag.Int("top", 10, "How many diseases to list by prior")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("--data required")
	}

	engine, err := triage.BuildModel(*dataPath, triage.Options{})
	if err != nil {
		log.Fatal(err)
	}

	m := engine.Model()
	diseases := m.Diseases()

	fmt.Printf("Diseases:        %d\n", len(diseases))
	fmt.Printf("Symptoms:        %d\n", m.VocabularySize())
	fmt.Printf("Total mass:      %d\n", m.TotalMass())
	fmt.Println()

	sort.SliceStable(diseases, func(i, j int) bool {
		return m.Prior(diseases[i]) > m.Prior(diseases[j])
	})
	if len(diseases) > *top {
		diseases = diseases[:*top]
	}

	fmt.Printf("Top %d diseases by prior:\n", len(diseases))
	for i, d := range diseases {
		fmt.Printf("  %2d. %-40s %8.4f (mass %d)\n", i+1, d, m.Prior(d), m.DiseaseTotal(d))
	}
}
