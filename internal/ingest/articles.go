// Package ingest builds the knowledge base offline: it loads blog article
// JSON files, splits them into overlapping chunks, and embeds them into the
// vector store. Rerunning recreates the article set from scratch.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eliselabs/sdragent/internal/log"
)

// Article is one blog article as exported to JSON.
type Article struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	Summary     string `json:"summary"`
	MainContent string `json:"main_content"`
}

// fullText combines the parts that get chunked and embedded.
func (a Article) fullText() string {
	return fmt.Sprintf("# %s\n\n%s\n\n%s", a.Title, a.Summary, a.MainContent)
}

// LoadArticles reads every *.json file in dir. Files that fail to parse are
// skipped with a warning; a missing directory is an error.
func LoadArticles(dir string, logger log.Logger) ([]Article, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading articles directory %q: %w", dir, err)
	}

	var articles []Article
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable article", "file", entry.Name(), "error", err)
			continue
		}

		var article Article
		if err := json.Unmarshal(data, &article); err != nil {
			logger.Warn("skipping malformed article", "file", entry.Name(), "error", err)
			continue
		}
		articles = append(articles, article)
	}

	logger.Info("loaded articles", "dir", dir, "count", len(articles))
	return articles, nil
}
