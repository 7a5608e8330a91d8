package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cognicore/triage/pkg/triage"
	"github.com/cognicore/triage/pkg/triage/bayes"
)

func main() {
	var (
		dataPath = flag.String("data", "", "Source data TSV (required)")
		symptoms = flag.String("symptoms", "", `One-shot observation, e.g. "fever=1,cough=0"`)
		topK     = flag.Int("topk", 5, "Number of diagnoses to show")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("--data required")
	}

	engine, err := triage.BuildModel(*dataPath, triage.Options{TopK: *topK})
	if err != nil {
		log.Fatal(err)
	}

	// One-shot mode
	if *symptoms != "" {
		obs, err := parseObservation(*symptoms)
		if err != nil {
			log.Fatal(err)
		}
		printDiagnosis(engine.Diagnose(obs))
		return
	}

	runInteractive(engine)
}

// runInteractive asks about one symptom at a time, following the
// advisor's suggestion, and reprints the ranking after each answer.
func runInteractive(engine *triage.Engine) {
	fmt.Println("===========================================")
	fmt.Println("  Triage CLI")
	fmt.Println("  Symptom-guided disease ranking")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Answer y/n to each symptom, s to skip, q to quit.")
	fmt.Println()

	obs := bayes.Observation{}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		d := engine.Diagnose(obs)
		printDiagnosis(d)

		if len(d.Suggestions) == 0 {
			fmt.Println("No further symptoms to ask about.")
			return
		}

		next := d.Suggestions[0]
		fmt.Printf("Do you have %q? [y/n/s/q] ", next)
		if !scanner.Scan() {
			return
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			obs[next] = 1
		case "n", "no":
			obs[next] = 0
		case "s", "skip":
			// Mark as absent so the advisor moves on; skipping
			// without recording would loop on the same symptom.
			obs[next] = 0
		case "q", "quit":
			return
		}
		fmt.Println()
	}
}

// parseObservation parses "fever=1,cough=0" into an observation.
func parseObservation(text string) (bayes.Observation, error) {
	obs := bayes.Observation{}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, found := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("bad symptom entry %q", part)
		}

		v := 1
		if found && strings.TrimSpace(value) == "0" {
			v = 0
		}
		obs[name] = v
	}
	return obs, nil
}

func printDiagnosis(d triage.Diagnosis) {
	if len(d.Ranked) == 0 {
		fmt.Println("No diseases in model.")
		return
	}

	fmt.Println("Most likely diseases:")
	for i, r := range d.Ranked {
		fmt.Printf("  %d. %-30s %6.2f%%\n", i+1, r.Disease, r.Probability*100)
	}
}
