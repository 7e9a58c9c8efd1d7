package bibliography

import (
	"researchkit/lib/restyutil"
	"time"
)

type Config struct {
	Bibliography string `json:"bibliography"`
	// WHATWG encoding label of the bibliography file
	Encoding string `json:"encoding"`
	URL      string `json:"url"`
	Report   string `json:"report"`
	// timeout of the publisher list download, in seconds
	TimeoutSeconds int `json:"timeout_seconds"`
	// when set, every http exchange is dumped into this directory
	DumpDir          string `json:"dump_dir"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return restyutil.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func DefaultConfig() Config {
	return Config{
		Bibliography:   "./input/your_bibliography.txt",
		Encoding:       "utf-8",
		URL:            "https://beallslist.net/",
		Report:         "./output/bibliography_report.txt",
		TimeoutSeconds: 10,
	}
}
