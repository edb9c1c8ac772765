package retrieval

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/medbot-io/medbot/internal/progress"
)

// DefaultMaxFileSize is the maximum corpus file size to index (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// CorpusConfig controls which files are indexed and how they are chunked.
type CorpusConfig struct {
	RootDir      string
	Include      []string // Glob patterns, only matching files are indexed.
	Exclude      []string // Glob patterns, matching files are skipped.
	ChunkSize    int      // Chunk length in runes.
	ChunkOverlap int      // Overlap between consecutive chunks in runes.
	MaxFileSize  int64    // Files larger than this are skipped (0 = default).
}

// Index walks the corpus directory, chunks every matching file and adds
// the chunks to store. It reports per-file progress through reporter and
// returns the number of chunks indexed.
func Index(ctx context.Context, store *Store, cfg CorpusConfig, reporter progress.Reporter) (int, error) {
	files, err := collectFiles(cfg)
	if err != nil {
		return 0, err
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1200
	}
	overlap := cfg.ChunkOverlap
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	if reporter != nil {
		reporter.Start(len(files))
		defer reporter.Finish()
	}

	total := 0
	for i, path := range files {
		rel, err := filepath.Rel(cfg.RootDir, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if reporter != nil {
			reporter.Update(i+1, rel)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return total, fmt.Errorf("reading %s: %w", rel, err)
		}

		content := string(data)
		if strings.HasSuffix(strings.ToLower(rel), ".md") {
			content = extractMarkdownText(data)
		}

		var docs []Document
		for j, chunk := range chunkText(content, chunkSize, overlap) {
			docs = append(docs, Document{
				ID:      fmt.Sprintf("%s#%d", rel, j),
				Content: chunk,
				Source:  rel,
				Chunk:   j,
			})
		}
		if err := store.AddDocuments(ctx, docs); err != nil {
			return total, fmt.Errorf("indexing %s: %w", rel, err)
		}
		total += len(docs)
	}
	return total, nil
}

func collectFiles(cfg CorpusConfig) ([]string, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus root: %w", err)
	}

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(rel, cfg.Include) {
			return nil
		}
		if len(cfg.Exclude) > 0 && matchesAny(rel, cfg.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxSize {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus traversal: %w", err)
	}
	return files, nil
}

// matchesAny checks relPath against glob patterns, the full path first
// and then just the basename. An empty pattern list matches everything.
func matchesAny(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}

// extractMarkdownText parses markdown and returns its plain text so
// formatting syntax does not pollute the embeddings.
func extractMarkdownText(src []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if _, ok := n.(*ast.Paragraph); ok {
				buf.WriteByte('\n')
			}
			if _, ok := n.(*ast.Heading); ok {
				buf.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// chunkText splits text into rune chunks of at most size with the given
// overlap. Whitespace-only chunks are dropped.
func chunkText(s string, size, overlap int) []string {
	runes := []rune(s)
	var chunks []string
	step := size - overlap
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
