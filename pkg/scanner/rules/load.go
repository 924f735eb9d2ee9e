package rules

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CompassSecurity/commitleak/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// SecretsPatterns is the on-disk rules document, secrets-patterns-db shape.
type SecretsPatterns struct {
	Patterns []PatternElement `yaml:"patterns"`
}

type PatternElement struct {
	Pattern PatternPattern `yaml:"pattern"`
}

type PatternPattern struct {
	Name       string `yaml:"name"`
	Regex      string `yaml:"regex"`
	Confidence string `yaml:"confidence"`
}

// LoadPatterns reads additional rule patterns from a local YAML file or,
// when given an http(s) URL, downloads the document first.
func LoadPatterns(pathOrURL string) ([]PatternElement, error) {
	var data []byte
	var err error

	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		data, err = downloadPatterns(pathOrURL)
	} else {
		data, err = os.ReadFile(pathOrURL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed reading rules from %s: %w", pathOrURL, err)
	}

	patterns := SecretsPatterns{}
	if err := yaml.Unmarshal(data, &patterns); err != nil {
		return nil, fmt.Errorf("failed unmarshalling rules file: %w", err)
	}

	log.Debug().Int("count", len(patterns.Patterns)).Str("source", pathOrURL).Msg("Loaded extended rules")
	return patterns.Patterns, nil
}

func downloadPatterns(url string) ([]byte, error) {
	client := httpclient.GetHTTPClient()
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("rules download returned HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
