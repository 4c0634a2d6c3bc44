package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/kisspad/log"
	"gopkg.in/yaml.v3"
)

// keyComments documents each key of the generated template.
var keyComments = map[string]string{
	"theme":          "Color theme: light or dark",
	"tab_width":      "Columns per tab stop",
	"debug":          "Write debug logs (to log_file, or debug.log)",
	"log_file":       "Log file path",
	"diagnostics":    "Compiler diagnostics file; lines reported as errors get the error background",
	"workers":        "Files highlighted in parallel by the render command",
	"watch_debounce": "Quiet period before reloading changed files",
	"export":         "Render command options",
	"format":         "html, terminal, terminal256, text or jsonl",
	"line_numbers":   "Show line numbers in HTML output",
	"tracing":        "OpenTelemetry tracing of highlight passes",
	"enabled":        "Record a span per pass",
	"exporter":       "file, stdout, otlp or none",
	"file_path":      "Trace output for the file exporter",
	"otlp_endpoint":  "Collector address for the otlp exporter",
	"sample_rate":    "Fraction of passes traced",
}

// Template returns the default configuration as commented YAML.
func Template() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(Defaults()); err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	annotate(&doc)

	var buf bytes.Buffer
	buf.WriteString("# kisspad configuration\n\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func annotate(n *yaml.Node) {
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if c, ok := keyComments[key.Value]; ok {
			key.HeadComment = c
		}
		annotate(val)
	}
}

// WriteDefault creates a config file at path with default settings and
// comments. Creates the parent directory if it doesn't exist.
func WriteDefault(path string) error {
	log.Debug(log.CatConfig, "writing default config", "path", path)

	data, err := Template()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "path", path)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", path)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", path)
	return nil
}
