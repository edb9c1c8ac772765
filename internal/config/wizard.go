package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .medbot.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to medbot! Let's configure your clinic assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "anthropic", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Model name.
	modelPrompt := promptui.Prompt{
		Label:   "Chat model",
		Default: defaultModelFor(cfg.Provider),
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model prompt: %w", err)
	}
	cfg.Model = model

	// 3. Corpus directory for the medical reference documents.
	corpusPrompt := promptui.Prompt{
		Label:   "Medical reference corpus directory",
		Default: cfg.CorpusDir,
	}
	corpus, err := corpusPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("corpus prompt: %w", err)
	}
	cfg.CorpusDir = corpus

	// 4. Default reply language when detection fails.
	langPrompt := promptui.Select{
		Label: "Default language for field prompts",
		Items: []string{"tr", "en", "de", "fr", "es"},
	}
	_, langStr, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.DefaultLanguage = langStr

	// 5. HTTP port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(".medbot.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration saved to .medbot.yml")
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" {
		fmt.Printf("Remember to export %s before starting the server.\n", envVar)
	}

	return cfg, nil
}

// defaultModelFor suggests a chat model for the given provider.
func defaultModelFor(p ProviderType) string {
	switch p {
	case ProviderAnthropic:
		return "claude-haiku-4-5-20251001"
	case ProviderOllama:
		return "llama3"
	default:
		return "gpt-4o-mini"
	}
}
