package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"langcore/toolconfig"
)

// loadConfig resolves the effective Config from --config and then
// applies --trace on top, per SPEC_FULL §2 ("CLI flags override file
// values").
func loadConfig() (toolconfig.Config, error) {
	cfg, err := toolconfig.Load(configPath)
	if err != nil {
		return toolconfig.Config{}, err
	}
	if traceLevel != "" {
		lvl, err := zerolog.ParseLevel(traceLevel)
		if err != nil {
			return toolconfig.Config{}, fmt.Errorf("--trace: %w", err)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// parseInts parses a comma-separated list of int64 literals, the only
// form of program input this CLI accepts (spec's parser is out of
// scope, so there is no source-level read() to feed otherwise).
func parseInts(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("--input: %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func formatInts(vs []int64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ", ")
}
