package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	RAG     RAGConfig     `yaml:"rag"`
}

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Mode     string `yaml:"mode"` // debug, release, test
	LogLevel string `yaml:"log_level"`
}

type StorageConfig struct {
	// Path of the JSON catalog document.
	Path string `yaml:"path"`
}

type OpenAIConfig struct {
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Provider string `yaml:"provider"` // openai, anthropic, ollama, gemini
}

type RAGConfig struct {
	// PDFPath is the guidelines document indexed at startup.
	PDFPath        string `yaml:"pdf_path"`
	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
	TopK           int    `yaml:"top_k"`
	EmbeddingModel string `yaml:"embedding_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
		cfg.fillDefaults()
	}

	cfg.overrideFromEnv()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     "8000",
			Mode:     "debug",
			LogLevel: "info",
		},
		Storage: StorageConfig{
			Path: "db_data.json",
		},
		OpenAI: OpenAIConfig{
			BaseURL:  "https://api.openai.com/v1",
			Model:    "gpt-3.5-turbo-0125",
			Provider: "openai",
		},
		RAG: RAGConfig{
			PDFPath:        "Operational_Procedures_and_Guidelines.pdf",
			ChunkSize:      1000,
			ChunkOverlap:   200,
			TopK:           4,
			EmbeddingModel: "text-embedding-ada-002",
			TimeoutSeconds: 45,
		},
	}
}

// fillDefaults backfills zero values on a config loaded from file so a
// partial config.yaml behaves like the defaults for omitted sections.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = def.OpenAI.BaseURL
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = def.OpenAI.Model
	}
	if c.OpenAI.Provider == "" {
		c.OpenAI.Provider = def.OpenAI.Provider
	}
	if c.RAG.PDFPath == "" {
		c.RAG.PDFPath = def.RAG.PDFPath
	}
	if c.RAG.ChunkSize == 0 {
		c.RAG.ChunkSize = def.RAG.ChunkSize
	}
	if c.RAG.ChunkOverlap == 0 {
		c.RAG.ChunkOverlap = def.RAG.ChunkOverlap
	}
	if c.RAG.TopK == 0 {
		c.RAG.TopK = def.RAG.TopK
	}
	if c.RAG.EmbeddingModel == "" {
		c.RAG.EmbeddingModel = def.RAG.EmbeddingModel
	}
	if c.RAG.TimeoutSeconds == 0 {
		c.RAG.TimeoutSeconds = def.RAG.TimeoutSeconds
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Server.LogLevel = level
	}
	if path := os.Getenv("DB_FILE"); path != "" {
		c.Storage.Path = path
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		c.OpenAI.BaseURL = baseURL
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		c.OpenAI.APIKey = apiKey
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		c.OpenAI.Model = model
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.OpenAI.Provider = provider
	}
	if pdfPath := os.Getenv("RAG_PDF_PATH"); pdfPath != "" {
		c.RAG.PDFPath = pdfPath
	}
	if timeout := os.Getenv("RAG_TIMEOUT_SECONDS"); timeout != "" {
		if v, err := strconv.Atoi(timeout); err == nil && v > 0 {
			c.RAG.TimeoutSeconds = v
		}
	}
}
