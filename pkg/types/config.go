package types

// StoreConfig holds settings for the SQLite store.
type StoreConfig struct {
	// DataDir is the base directory for persistent data (contains
	// donor.db and export files).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of list results
	// (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EngineConfig holds settings for the extraction engine.
type EngineConfig struct {
	// Trace enables the extractor reasoning trail on stderr.
	Trace bool `json:"trace" yaml:"trace"`
}

// Config groups all configuration for the donor-engine CLI.
type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Engine EngineConfig `json:"engine" yaml:"engine"`
}
