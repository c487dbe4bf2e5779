package main

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/devancy/search-index-engine/index"
)

// corpusDoc is one line of the newline-delimited JSON corpus dump this
// harness loads, the JSON-shaped counterpart of the teacher's Wikipedia
// XML abstract record.
type corpusDoc struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Status  string   `json:"status"`
	Ratings []int    `json:"ratings"`
	status  index.Status
}

var statusByName = map[string]index.Status{
	"actual":     index.StatusActual,
	"irrelevant": index.StatusIrrelevant,
	"banned":     index.StatusBanned,
	"removed":    index.StatusRemoved,
}

// loadCorpus reads a newline-delimited JSON corpus, transparently
// decompressing it if path ends in .gz (same convenience the teacher's
// LoadDocuments offers via compress/gzip).
func loadCorpus(path string) ([]corpusDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	var docs []corpusDoc
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var d corpusDoc
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			return nil, fmt.Errorf("parsing corpus line: %w", err)
		}
		docs = append(docs, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Resolve and validate the status label concurrently across a worker
	// pool, splitting the slice into contiguous chunks the way the
	// teacher's LoadDocuments assigns ids.
	numWorkers := runtime.NumCPU()
	if numWorkers > len(docs) {
		numWorkers = len(docs)
	}
	if numWorkers == 0 {
		return docs, nil
	}
	chunkSize := len(docs) / numWorkers

	errs := make([]error, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = len(docs)
		}
		wg.Add(1)
		go func(i, start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				s, ok := statusByName[strings.ToLower(docs[j].Status)]
				if !ok {
					errs[i] = fmt.Errorf("corpus line %d: unknown status %q", j, docs[j].Status)
					return
				}
				docs[j].status = s
			}
		}(i, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return docs, nil
}
