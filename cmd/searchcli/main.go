package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/eiannone/keyboard"

	"github.com/devancy/search-index-engine/index"
	"github.com/devancy/search-index-engine/paginator"
	"github.com/devancy/search-index-engine/requestqueue"
)

// config holds the application configuration values derived from flags.
type config struct {
	corpusPath string
	stopWords  string
	pageSize   int
	status     string
}

func main() {
	setupLogging()
	cfg := parseFlags()

	log.Println("Running Full Text Search Engine")

	docs, err := loadAndValidateCorpus(cfg.corpusPath)
	if err != nil {
		log.Fatalf("Initialization error: %v", err)
	}

	idx, err := createAndPopulateIndex(docs, cfg.stopWords)
	if err != nil {
		log.Fatalf("Initialization error: %v", err)
	}

	var removed []int
	idx.RemoveDuplicates(func(id int) {
		removed = append(removed, id)
		log.Printf("Found duplicate document id %d", id)
	})
	if len(removed) > 0 {
		log.Printf("Removed %d duplicate documents", len(removed))
	}

	rq := requestqueue.New(idx)

	if err := runInteractiveSearch(rq, cfg); err != nil {
		log.Fatalf("Runtime error: %v", err)
	}
}

// setupLogging configures the log output format.
func setupLogging() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.SetPrefix("[Search Engine] ")
}

// parseFlags parses command-line flags and returns a config struct.
func parseFlags() (cfg config) {
	flag.StringVar(&cfg.corpusPath, "p", "corpus.jsonl", "newline-delimited JSON corpus path (.gz accepted)")
	flag.StringVar(&cfg.stopWords, "stop", "", "space-separated stop words")
	flag.IntVar(&cfg.pageSize, "n", index.MaxResultDocumentCount, "results displayed per page")
	flag.StringVar(&cfg.status, "status", "ACTUAL", "default status filter (ACTUAL, IRRELEVANT, BANNED, REMOVED)")
	flag.Parse()
	return cfg
}

// loadAndValidateCorpus loads the corpus file and validates the path.
func loadAndValidateCorpus(path string) ([]corpusDoc, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("corpus file not found: %s", path)
	}

	start := time.Now()
	log.Printf("Loading corpus from %s...", path)
	docs, err := loadCorpus(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	log.Printf("Loaded %d documents in %v", len(docs), time.Since(start))
	return docs, nil
}

// createAndPopulateIndex builds an Index over the given stop words and
// adds every corpus document. Writes are serialized behind a mutex per
// spec.md §5 ("callers are responsible for external read/write
// exclusion"); only the corpus's status resolution runs in parallel (see
// corpus.go).
func createAndPopulateIndex(docs []corpusDoc, stopWords string) (*index.Index, error) {
	idx, err := index.NewFromText(stopWords)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	start := time.Now()
	log.Println("Indexing documents...")
	var mu sync.Mutex
	for _, d := range docs {
		mu.Lock()
		addErr := idx.AddDocument(d.ID, d.Text, d.status, d.Ratings)
		mu.Unlock()
		if addErr != nil {
			log.Printf("Warning: skipping document %d: %v", d.ID, addErr)
		}
	}
	log.Printf("Indexed %d documents in %v", idx.DocumentCount(), time.Since(start))
	return idx, nil
}

// runInteractiveSearch handles the main user interaction loop for searching.
func runInteractiveSearch(rq *requestqueue.RequestQueue, cfg config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".search_history.tmp",
		InterruptPrompt: "^C\n",
		EOFPrompt:       "exit\n",
		HistoryLimit:    100,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	status, err := parseStatusFlag(cfg.status)
	if err != nil {
		return err
	}

	fmt.Println("\nEnter your search query (press Ctrl+C or type 'exit' to quit):")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				fmt.Println("\nExiting...")
				return nil
			}
			continue // allow clearing the line with Ctrl+C
		}
		if err == io.EOF || strings.TrimSpace(line) == "exit" {
			fmt.Println("\nExiting...")
			return nil
		}
		queryString := strings.TrimSpace(line)
		if queryString == "" {
			continue
		}

		results, err := performSearch(rq, queryString, status)
		if err != nil {
			fmt.Printf("Query error: %v\n", err)
			continue
		}
		fmt.Printf("\nSearch Results for: %q\n", queryString)
		displayResults(results, cfg.pageSize)
		fmt.Printf("(no-result requests in last %d: %d)\n", requestqueue.WindowSize, rq.NoResultRequests())
	}
}

// performSearch searches the index and returns all matching results sorted by relevance.
func performSearch(rq *requestqueue.RequestQueue, query string, status index.Status) ([]index.Hit, error) {
	start := time.Now()
	log.Printf("Searching for: %q", query)
	hits, err := rq.AddFindRequestByStatus(query, status)
	if err != nil {
		return nil, err
	}
	log.Printf("Search completed in %v, found %d results.", time.Since(start), len(hits))
	return hits, nil
}

// displayResults prints search results one page at a time, advancing on
// Enter and returning to the query prompt on any other key.
func displayResults(hits []index.Hit, pageSize int) {
	if len(hits) == 0 {
		fmt.Println("No matches found.")
		return
	}

	pages := paginator.Paginate(hits, pageSize)
	fmt.Println("\nResults (sorted by relevance):")
	fmt.Println(strings.Repeat("-", 80))

	for i, page := range pages {
		for j, hit := range page.Items() {
			fmt.Printf("\n%d. { document_id = %d, relevance = %v, rating = %d }\n",
				i*pageSize+j+1, hit.ID, hit.Relevance, hit.Rating)
			fmt.Println(strings.Repeat("-", 80))
		}

		if i == len(pages)-1 {
			fmt.Println("\nEnd of results.")
			break
		}

		remaining := len(hits) - (i+1)*pageSize
		fmt.Printf("\nPress Enter for next page (%d remaining), or any other key to return to query...\n", remaining)
		if !waitForEnter() {
			break
		}
	}
}

// waitForEnter reads a single keypress and reports whether it was Enter.
// Falls back to continuing on keyboard-open failure (e.g. no TTY), since
// pagination is a convenience, not a correctness concern.
func waitForEnter() bool {
	if err := keyboard.Open(); err != nil {
		return true
	}
	defer keyboard.Close()

	_, key, err := keyboard.GetKey()
	if err != nil {
		return true
	}
	return key == keyboard.KeyEnter
}

func parseStatusFlag(s string) (index.Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTUAL":
		return index.StatusActual, nil
	case "IRRELEVANT":
		return index.StatusIrrelevant, nil
	case "BANNED":
		return index.StatusBanned, nil
	case "REMOVED":
		return index.StatusRemoved, nil
	default:
		return 0, fmt.Errorf("unknown status filter %q", s)
	}
}
