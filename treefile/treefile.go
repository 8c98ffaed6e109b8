package treefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/omnisearch/core"
)

// ErrEmptyFile is returned when a tree file has no document.
var ErrEmptyFile = errors.New("tree file is empty")

// Load reads and validates the tree file at path.
func Load(path string) (*core.NavigationNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Parse decodes and validates a YAML tree. Unknown fields are rejected.
func Parse(data []byte) (*core.NavigationNode, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var root core.NavigationNode
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, err
	}
	if err := core.ValidateTree(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// Marshal encodes root as YAML.
func Marshal(root *core.NavigationNode) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes root to path.
func Save(path string, root *core.NavigationNode) error {
	data, err := Marshal(root)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
