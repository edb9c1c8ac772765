package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
)

// Config is the top-level medbot configuration, corresponding to .medbot.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	Port              int          `yaml:"port" koanf:"port"`
	DatabasePath      string       `yaml:"database_path" koanf:"database_path"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	CorpusDir         string       `yaml:"corpus_dir" koanf:"corpus_dir"`
	Include           []string     `yaml:"include" koanf:"include"`
	Exclude           []string     `yaml:"exclude" koanf:"exclude"`
	DefaultLanguage   string       `yaml:"default_language" koanf:"default_language"`
	RetrievalTopK     int          `yaml:"retrieval_top_k" koanf:"retrieval_top_k"`
	ChunkSize         int          `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap      int          `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	AllowAllOrigins   bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
