package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/relaydesk/relaydesk/pkg/signature"
)

const (
	formatAuto = "auto"
	formatJSON = "json"
	formatYAML = "yaml"
)

// readTree loads a tree from path, or from stdin when path is empty or "-".
func readTree(path, format string, stdin io.Reader) (signature.Tree, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tree: %w", err)
	}

	switch resolveFormat(path, format, data) {
	case formatYAML:
		if data, err = yamlToJSON(data); err != nil {
			return nil, err
		}
	case formatJSON:
	default:
		return nil, fmt.Errorf("unsupported format %q (want %s, %s or %s)", format, formatAuto, formatJSON, formatYAML)
	}

	tree, err := signature.UnmarshalTree(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tree: %w", err)
	}
	if err := signature.Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// resolveFormat picks the decoder from the flag, then the file extension,
// then the first significant byte.
func resolveFormat(path, format string, data []byte) string {
	format = strings.ToLower(format)
	if format != "" && format != formatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".yaml", ".yml":
		return formatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return formatJSON
	}
	return formatYAML
}

// yamlToJSON converts a YAML document to JSON, keeping mapping key order so
// style declarations render in the order they were written.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer
	if err := writeJSONNode(&buf, &doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONNode(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSONNode(buf, node.Content[0])

	case yaml.AliasNode:
		return writeJSONNode(buf, node.Alias)

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(node.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSONNode(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.ScalarNode:
		var v interface{}
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		buf.Write(out)
		return nil
	}
	return fmt.Errorf("line %d: unsupported YAML node", node.Line)
}
