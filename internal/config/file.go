package config

// File represents the structure of the .pwcheck configuration file.
// Pointer fields distinguish "not set" from the zero value.
type File struct {
	Corpus      CorpusSection      `yaml:"corpus,omitempty"`
	Output      OutputSection      `yaml:"output,omitempty"`
	Interactive InteractiveSection `yaml:"interactive,omitempty"`

	// BatchSize is the number of concurrent evaluations for password lists.
	BatchSize int `yaml:"batch_size,omitempty"`
}

// CorpusSection configures the breached-password corpus.
type CorpusSection struct {
	// Path is the word list file.
	Path string `yaml:"path,omitempty"`

	// Store names a corpus imported into the local database.
	Store string `yaml:"store,omitempty"`

	// Encoding is "latin1" or "utf8".
	Encoding string `yaml:"encoding,omitempty"`
}

// OutputSection configures report rendering.
type OutputSection struct {
	Format       string `yaml:"format,omitempty"`
	MaskPassword *bool  `yaml:"mask_password,omitempty"`
	Color        *bool  `yaml:"color,omitempty"`
	FailOn       string `yaml:"fail_on,omitempty"`
}

// InteractiveSection configures the interactive session.
type InteractiveSection struct {
	ExitKeyword string `yaml:"exit_keyword,omitempty"`
	Prompt      string `yaml:"prompt,omitempty"`
	HideInput   *bool  `yaml:"hide_input,omitempty"`
}

// Apply copies every value set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f == nil {
		return
	}

	if f.Corpus.Path != "" {
		cfg.CorpusPath = f.Corpus.Path
	}
	if f.Corpus.Store != "" {
		cfg.CorpusStore = f.Corpus.Store
	}
	if f.Corpus.Encoding != "" {
		cfg.Encoding = f.Corpus.Encoding
	}

	if f.Output.Format != "" {
		cfg.Format = f.Output.Format
	}
	if f.Output.MaskPassword != nil {
		cfg.MaskPassword = *f.Output.MaskPassword
	}
	if f.Output.Color != nil {
		cfg.NoColor = !*f.Output.Color
	}
	if f.Output.FailOn != "" {
		cfg.FailOn = f.Output.FailOn
	}

	if f.Interactive.ExitKeyword != "" {
		cfg.ExitKeyword = f.Interactive.ExitKeyword
	}
	if f.Interactive.Prompt != "" {
		cfg.Prompt = f.Interactive.Prompt
	}
	if f.Interactive.HideInput != nil {
		cfg.HideInput = *f.Interactive.HideInput
	}

	if f.BatchSize != 0 {
		cfg.BatchSize = f.BatchSize
	}
}
