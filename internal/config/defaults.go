package config

// DefaultExcludes are corpus glob patterns excluded from indexing by default.
var DefaultExcludes = []string{
	".git/**",
	"**/*.csv",
	"**/*.json",
	"**/*.gob.gz",
	"README.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		Port:              8080,
		DatabasePath:      "data/medbot.db",
		DataDir:           "data",
		CorpusDir:         "corpus",
		Include:           []string{"**/*.md", "**/*.txt"},
		Exclude:           DefaultExcludes,
		DefaultLanguage:   "tr",
		RetrievalTopK:     5,
		ChunkSize:         1200,
		ChunkOverlap:      200,
		RequestsPerMinute: 60,
	}
}
