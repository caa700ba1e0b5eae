// Package sources decodes the known source categories from configuration.
package sources

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/viper"

	"github.com/emilroby/nsefi-harvester/internal/harvest"
)

// Config is the configuration shape of one source entry.
type Config struct {
	Category string            `mapstructure:"category"`
	URL      string            `mapstructure:"url"`
	Method   string            `mapstructure:"method"`
	Type     string            `mapstructure:"type"`
	Form     map[string]string `mapstructure:"form"`
	Headers  map[string]string `mapstructure:"headers"`
	Keywords []string          `mapstructure:"keywords"`
}

// Load decodes the "sources" configuration key into harvest sources.
func Load(v *viper.Viper) ([]harvest.Source, error) {
	var cfgs []Config
	if err := v.UnmarshalKey("sources", &cfgs); err != nil {
		return nil, fmt.Errorf("decode sources config: %w", err)
	}
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}

	out := make([]harvest.Source, 0, len(cfgs))
	for i, cfg := range cfgs {
		src, err := cfg.toSource()
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		out = append(out, src)
	}
	return out, nil
}

func (c Config) toSource() (harvest.Source, error) {
	if strings.TrimSpace(c.Category) == "" {
		return harvest.Source{}, fmt.Errorf("category is required")
	}
	if strings.TrimSpace(c.URL) == "" {
		return harvest.Source{}, fmt.Errorf("url is required")
	}

	method := strings.ToUpper(strings.TrimSpace(c.Method))
	switch method {
	case "":
		method = http.MethodGet
	case http.MethodGet, http.MethodPost:
	default:
		return harvest.Source{}, fmt.Errorf("unsupported method %q", c.Method)
	}

	var headers http.Header
	if len(c.Headers) > 0 {
		headers = http.Header{}
		for key, value := range c.Headers {
			headers.Set(key, value)
		}
	}

	return harvest.Source{
		Category: c.Category,
		URL:      c.URL,
		Method:   method,
		Form:     c.Form,
		Headers:  headers,
		Type:     c.Type,
		Keywords: c.Keywords,
	}, nil
}
