package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/triage/pkg/triage/internalerr"
	"github.com/cognicore/triage/pkg/triage/stats"
)

// Column names expected in the source data header.
const (
	ColDisease = "disease_name"
	ColSymptom = "symptom_name"
	ColCount   = "cooccurs"
)

// ReadFile streams co-occurrence records from a tab-delimited file into
// the aggregator. A missing or unreadable file is the one hard failure;
// individual malformed rows are skipped.
func ReadFile(path string, agg *stats.Aggregator) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source data: %w", err)
	}
	defer f.Close()

	if err := Read(f, agg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Read consumes tab-delimited records with a header row naming at least
// the disease_name, symptom_name and cooccurs columns. Header matching
// is case-insensitive. Rows with a missing disease or symptom are
// skipped; an unparseable count becomes zero. Neither aborts the load.
func Read(r io.Reader, agg *stats.Aggregator) error {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", internalerr.ErrBadSourceData)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range []string{ColDisease, ColSymptom, ColCount} {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("missing %q column: %w", col, internalerr.ErrBadSourceData)
		}
	}

	field := func(row []string, col string) string {
		i := index[col]
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	var rows, malformed int64
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			malformed++
			continue
		}

		rows++
		agg.Add(stats.Record{
			Disease: field(row, ColDisease),
			Symptom: field(row, ColSymptom),
			Count:   stats.ParseCount(field(row, ColCount)),
		})
	}

	if skipped := malformed + agg.Skipped(); skipped > 0 {
		log.Printf("ingest: skipped %d of %d rows", skipped, rows+malformed)
	}
	return nil
}
