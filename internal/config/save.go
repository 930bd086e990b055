package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// settableKeys lists the keys accepted by SaveValue. True means the value
// is written as a quoted string.
var settableKeys = map[string]bool{
	"match.flags":            true,
	"match.timeout":          false,
	"ui.live":                false,
	"ui.show_count":          false,
	"ui.wrap_width":          false,
	"theme.highlight":        true,
	"theme.highlight_text":   true,
	"theme.accent":           true,
	"theme.muted":            true,
	"theme.error":            true,
	"cache.expiration":       false,
	"cache.cleanup_interval": false,
	"tracing.enabled":        false,
	"tracing.exporter":       true,
	"tracing.file_path":      true,
	"tracing.otlp_endpoint":  true,
	"tracing.sample_rate":    false,
}

// SettableKeys returns the keys accepted by SaveValue, sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsSettableKey reports whether key can be written by SaveValue.
func IsSettableKey(key string) bool {
	_, ok := settableKeys[key]
	return ok
}

// SaveValue sets a single "section.key" value in the config file, creating
// the file if needed. Comments and formatting elsewhere in the file are
// preserved by editing the yaml.Node tree.
func SaveValue(configPath, key, value string) error {
	quoted, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	section, name, _ := strings.Cut(key, ".")

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path is the user's config file
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	sectionNode := mappingValue(root, section)
	if sectionNode == nil || sectionNode.Kind != yaml.MappingNode {
		replacement := &yaml.Node{Kind: yaml.MappingNode}
		setMappingValue(root, section, replacement)
		sectionNode = replacement
	}

	valueNode := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	if quoted {
		valueNode.Style = yaml.DoubleQuotedStyle
	}
	setMappingValue(sectionNode, name, valueNode)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// setMappingValue replaces the value for key, keeping the existing value's
// comments, or appends the pair.
func setMappingValue(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			old := mapping.Content[i+1]
			value.HeadComment = old.HeadComment
			value.LineComment = old.LineComment
			value.FootComment = old.FootComment
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".rexview.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
