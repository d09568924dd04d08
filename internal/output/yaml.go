package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// PrintYAML serializes v to w as YAML.
func PrintYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
