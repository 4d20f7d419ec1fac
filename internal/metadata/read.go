package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/model"
	"github.com/klauspost/compress/zstd"
)

// ReadFile loads a module description from a JSON file. Files ending in
// ".zst" are zstd-decompressed first.
func ReadFile(path string) (*Module, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: metadata file path is empty", model.ErrInvalidArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	m, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

// Decode parses a JSON module description, links nested types to their
// declaring types and checks that every type definition is classifiable.
func Decode(r io.Reader) (*Module, error) {
	var m Module
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding metadata JSON: %w", err)
	}

	for _, t := range m.Types {
		if t == nil {
			return nil, fmt.Errorf("%w: null type record", model.ErrInvalidArgument)
		}
		t.DeclaringType = nil
		if err := link(t); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func link(t *TypeRecord) error {
	if t.Name == "" {
		return fmt.Errorf("%w: type record without a name", model.ErrInvalidArgument)
	}
	if _, ok := t.Classify(); !ok {
		return fmt.Errorf("%w: type %s is not a class, interface, struct or enum", model.ErrFormat, t.Name)
	}
	for _, nested := range t.NestedTypes {
		if nested == nil {
			return fmt.Errorf("%w: null nested type in %s", model.ErrInvalidArgument, t.Name)
		}
		nested.DeclaringType = &t.TypeRef
		if err := link(nested); err != nil {
			return err
		}
	}
	return nil
}
