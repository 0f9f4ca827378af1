package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config contains global runtime configuration.
type Config struct {
	OutputDirectory        string
	OpenInBrowser          bool
	PromptForSearchTerms   bool
	DefaultSearchTerms     string
	VerboseOutput          bool
	IncludeDisabledEngines bool

	EnginesFile   string
	Format        string
	Title         string
	BulkOpenDelay time.Duration
	LogLevel      string
	LogFile       string
}

// Formats lists the supported report formats.
var Formats = []string{"html", "md", "json"}

// LoadConfig builds Config from Viper-bound flags, env and config file.
func LoadConfig(v *viper.Viper) Config {
	return Config{
		OutputDirectory:        v.GetString("output_directory"),
		OpenInBrowser:          v.GetBool("open_in_browser"),
		PromptForSearchTerms:   v.GetBool("prompt_for_search_terms"),
		DefaultSearchTerms:     v.GetString("default_search_terms"),
		VerboseOutput:          v.GetBool("verbose_output"),
		IncludeDisabledEngines: v.GetBool("include_disabled_engines"),
		EnginesFile:            v.GetString("engines_file"),
		Format:                 strings.ToLower(v.GetString("format")),
		Title:                  v.GetString("title"),
		BulkOpenDelay:          v.GetDuration("bulk_open_delay"),
		LogLevel:               v.GetString("log_level"),
		LogFile:                v.GetString("log_file"),
	}
}

// Validate returns error if configuration is invalid.
func (c Config) Validate() error {
	if c.OutputDirectory == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if !isFormat(c.Format) {
		return fmt.Errorf("unknown report format %q (available: %s)", c.Format, strings.Join(Formats, ", "))
	}
	if c.BulkOpenDelay < 0 {
		return fmt.Errorf("bulk open delay cannot be negative")
	}
	return nil
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
