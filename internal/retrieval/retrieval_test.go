package retrieval

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/medbot-io/medbot/internal/llm"
)

// mockEmbedder returns deterministic embeddings based on text content so
// tests run without network access.
type mockEmbedder struct {
	dims int
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = m.deterministicVector(text)
	}
	return results, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) Name() string    { return "mock" }

func (m *mockEmbedder) deterministicVector(text string) []float32 {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		idx := (int(ch) + i) % m.dims
		vec[idx] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(&mockEmbedder{dims: 64})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStoreAddAndSearch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	docs := []Document{
		{ID: "flu#0", Content: "Influenza symptoms include fever, cough and muscle aches", Source: "flu.md"},
		{ID: "diabetes#0", Content: "Type 2 diabetes is managed with diet and medication", Source: "diabetes.md"},
		{ID: "burns#0", Content: "Minor burns should be cooled under running water", Source: "burns.md"},
	}
	if err := store.AddDocuments(ctx, docs); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}
	if count := store.Count(); count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}

	results, err := store.Search(ctx, "fever and cough symptoms", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || len(results) > 2 {
		t.Fatalf("got %d results", len(results))
	}
	for _, r := range results {
		if r.Similarity == 0 {
			t.Error("result has zero similarity")
		}
	}
}

func TestStoreSearchEmpty(t *testing.T) {
	store := newTestStore(t)
	results, err := store.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatal(err)
	}
	if results != nil {
		t.Fatalf("got %d results from empty store", len(results))
	}
}

func TestStorePersistAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	docs := []Document{
		{ID: "a#0", Content: "asthma inhalers relieve airway constriction", Source: "asthma.md", Chunk: 0},
		{ID: "a#1", Content: "asthma triggers include pollen and dust", Source: "asthma.md", Chunk: 1},
	}
	if err := store.AddDocuments(ctx, docs); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	dir := t.TempDir()
	if err := store.Persist(ctx, dir); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	store2 := newTestStore(t)
	if err := store2.Load(ctx, dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if count := store2.Count(); count != 2 {
		t.Fatalf("Count after load = %d, want 2", count)
	}

	results, err := store2.Search(ctx, "asthma", 2)
	if err != nil {
		t.Fatalf("Search after load: %v", err)
	}
	for _, r := range results {
		if r.Document.Source != "asthma.md" {
			t.Errorf("source = %q after load", r.Document.Source)
		}
	}
}

func TestIndexCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flu.md", "# Influenza\n\nFever, cough and muscle aches are common symptoms.\n")
	writeFile(t, dir, "notes.txt", "Drink plenty of fluids when ill.")
	writeFile(t, dir, "ignore.csv", "a,b,c")
	writeFile(t, dir, "sub/diabetes.md", "Type 2 diabetes management.")

	store := newTestStore(t)
	n, err := Index(context.Background(), store, CorpusConfig{
		RootDir:   dir,
		Include:   []string{"**/*.md", "**/*.txt"},
		ChunkSize: 1200,
	}, nil)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if n != 3 {
		t.Fatalf("indexed %d chunks, want 3", n)
	}
	if store.Count() != 3 {
		t.Fatalf("store count = %d", store.Count())
	}
}

func TestIndexExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.md", "kept content")
	writeFile(t, dir, "drafts/skip.md", "draft content")

	store := newTestStore(t)
	n, err := Index(context.Background(), store, CorpusConfig{
		RootDir: dir,
		Include: []string{"**/*.md"},
		Exclude: []string{"drafts/**"},
	}, nil)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if n != 1 {
		t.Fatalf("indexed %d chunks, want 1", n)
	}
}

func TestExtractMarkdownText(t *testing.T) {
	src := []byte("# Heading\n\nSome *emphasised* text.\n\n```\ncode block\n```\n\n- item one\n- item two\n")
	got := extractMarkdownText(src)
	for _, want := range []string{"Heading", "Some", "emphasised", "item one"} {
		if !strings.Contains(got, want) {
			t.Errorf("extracted text missing %q: %q", want, got)
		}
	}
	if strings.Contains(got, "code block") {
		t.Errorf("code block not stripped: %q", got)
	}
	if strings.Contains(got, "*") || strings.Contains(got, "#") {
		t.Errorf("markdown syntax leaked: %q", got)
	}
}

func TestChunkText(t *testing.T) {
	chunks := chunkText(strings.Repeat("a", 250), 100, 20)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 100 {
		t.Errorf("first chunk length = %d", len(chunks[0]))
	}

	if got := chunkText("   \n  ", 100, 0); got != nil {
		t.Errorf("whitespace input produced chunks: %v", got)
	}
	if got := chunkText("short", 100, 0); len(got) != 1 || got[0] != "short" {
		t.Errorf("short input chunks = %v", got)
	}
}

type stubProvider struct {
	content string
	last    llm.CompletionRequest
}

func (s *stubProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.last = req
	return &llm.CompletionResponse{Content: s.content}, nil
}

func (s *stubProvider) Name() string { return "stub" }

func TestAnswererIncludesContext(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.AddDocuments(ctx, []Document{
		{ID: "flu#0", Content: "Influenza symptoms include fever and cough", Source: "flu.md"},
	})

	p := &stubProvider{content: "Fever and cough are typical."}
	a := NewAnswerer(store, p, "gpt-4o-mini", 5)

	got, err := a.Answer(ctx, "what are flu symptoms?")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Fever and cough are typical." {
		t.Fatalf("answer = %q", got)
	}

	if len(p.last.Messages) != 2 {
		t.Fatalf("got %d messages", len(p.last.Messages))
	}
	user := p.last.Messages[1].Content
	if !strings.Contains(user, "what are flu symptoms?") {
		t.Errorf("question missing from prompt: %q", user)
	}
	if !strings.Contains(user, "Influenza symptoms") {
		t.Errorf("retrieved context missing from prompt: %q", user)
	}
}

func TestAnswererEmptyStore(t *testing.T) {
	p := &stubProvider{content: "I do not have information on that."}
	a := NewAnswerer(newTestStore(t), p, "m", 5)

	if _, err := a.Answer(context.Background(), "anything?"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.last.Messages[1].Content, "no relevant documents") {
		t.Error("empty-store marker missing from prompt")
	}
}

type failingProvider struct{}

func (failingProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return nil, errors.New("provider down")
}

func (failingProvider) Name() string { return "failing" }

func TestInvalidResponder(t *testing.T) {
	p := &stubProvider{content: "I only handle appointments and medical questions."}
	r := NewInvalidResponder(p, "m")

	got, err := r.Respond(context.Background(), "what's the weather?")
	if err != nil {
		t.Fatal(err)
	}
	if got != "I only handle appointments and medical questions." {
		t.Fatalf("reply = %q", got)
	}
	if p.last.Messages[1].Content != "what's the weather?" {
		t.Errorf("user message = %q", p.last.Messages[1].Content)
	}
}

func TestInvalidResponderFallback(t *testing.T) {
	r := NewInvalidResponder(failingProvider{}, "m")

	got, err := r.Respond(context.Background(), "what's the weather?")
	if err != nil {
		t.Fatal(err)
	}
	if got != invalidFallback {
		t.Fatalf("reply = %q, want fallback", got)
	}
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
