// Package retrieval indexes the medical knowledge corpus and answers
// questions against it.
package retrieval

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/medbot-io/medbot/internal/embeddings"
)

const collectionName = "medical"

// Document is one chunk of the knowledge corpus.
type Document struct {
	ID      string
	Content string
	Source  string
	Chunk   int
}

// SearchResult pairs a document with its similarity to the query.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// Store holds the embedded corpus in a chromem-go collection.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewStore creates an empty in-memory Store using embedder for vectors.
func NewStore(embedder embeddings.Embedder) (*Store, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Store{db: db, collection: col, embedFunc: ef}, nil
}

// AddDocuments embeds and stores docs.
func (s *Store) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:      doc.ID,
			Content: doc.Content,
			Metadata: map[string]string{
				"source": doc.Source,
				"chunk":  strconv.Itoa(doc.Chunk),
			},
		}
	}

	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

// Search returns up to limit chunks most similar to query.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := s.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		chunk, _ := strconv.Atoi(r.Metadata["chunk"])
		out[i] = SearchResult{
			Document: Document{
				ID:      r.ID,
				Content: r.Content,
				Source:  r.Metadata["source"],
				Chunk:   chunk,
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// Persist writes the collection to dir for later Load.
func (s *Store) Persist(ctx context.Context, dir string) error {
	return s.db.ExportToFile(filepath.Join(dir, "medical.gob.gz"), true, "")
}

// Load restores a previously persisted collection from dir.
func (s *Store) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, "medical.gob.gz"), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

// Count returns the number of stored chunks.
func (s *Store) Count() int {
	return s.collection.Count()
}
