package config

// ClassifierConfig represents the configuration of the classification engine
type ClassifierConfig struct {
	MaxTokens     int
	LedgerMode    string
	UnknownTokens string
	Epsilon       float64
}

// CorpusConfig represents the corpus directories and exclusions
type CorpusConfig struct {
	SpamDir       string
	HamDir        string
	UnfilteredDir string
	Exclude       []string
}

// DocumentConfig represents how documents are decoded
type DocumentConfig struct {
	Charset      string
	SanitizeUTF8 bool
}

// StoreConfig represents the verdict store configuration
type StoreConfig struct {
	Enabled    bool
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		MaxTokens:     c.GetInt("classifier.max_tokens"),
		LedgerMode:    c.GetString("classifier.ledger_mode"),
		UnknownTokens: c.GetString("classifier.unknown_tokens"),
		Epsilon:       c.GetFloat64("classifier.epsilon"),
	}
}

// GetCorpus returns the corpus configuration
func (c *Config) GetCorpus() CorpusConfig {
	return CorpusConfig{
		SpamDir:       c.GetString("corpus.spam_dir"),
		HamDir:        c.GetString("corpus.ham_dir"),
		UnfilteredDir: c.GetString("corpus.unfiltered_dir"),
		Exclude:       c.GetStringSlice("corpus.exclude"),
	}
}

// GetDocuments returns the document decoding configuration
func (c *Config) GetDocuments() DocumentConfig {
	return DocumentConfig{
		Charset:      c.GetString("documents.charset"),
		SanitizeUTF8: c.GetBool("documents.sanitize_utf8"),
	}
}

// GetStore returns the verdict store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Enabled:    c.GetBool("store.enabled"),
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}
