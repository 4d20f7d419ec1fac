// Package snapshot stores a correlated namespace tree on disk as JSON or
// YAML, optionally zstd-compressed, for consumption by renderers.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/model"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

const (
	marker        = ".snapshot."
	compressedExt = ".zst"
)

// Snapshot is the exported form of one repository.
type Snapshot struct {
	Assembly   string             `json:"assembly" yaml:"assembly"`
	Namespaces []*model.Namespace `json:"namespaces" yaml:"namespaces"`
}

// FileName returns the file name a snapshot of assembly is saved under.
func FileName(assembly string, f Format, compress bool) string {
	name := assembly + marker + string(f)
	if compress {
		name += compressedExt
	}
	return name
}

// IsSnapshot reports whether path names a snapshot file.
func IsSnapshot(path string) bool {
	_, _, err := formatOf(path)
	return err == nil
}

func formatOf(path string) (Format, bool, error) {
	base := filepath.Base(path)
	compress := strings.HasSuffix(base, compressedExt)
	base = strings.TrimSuffix(base, compressedExt)

	i := strings.LastIndex(base, marker)
	if i < 0 {
		return "", false, fmt.Errorf("%w: %s is not a snapshot file", model.ErrFormat, path)
	}
	switch f := Format(base[i+len(marker):]); f {
	case JSON, YAML:
		return f, compress, nil
	default:
		return "", false, fmt.Errorf("%w: unknown snapshot format %q", model.ErrFormat, f)
	}
}

// Save writes s into dir and returns the path of the written file.
func Save(dir string, s *Snapshot, f Format, compress bool) (string, error) {
	if s == nil || s.Assembly == "" {
		return "", fmt.Errorf("%w: snapshot needs an assembly name", model.ErrInvalidArgument)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(dir, FileName(s.Assembly, f, compress))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating snapshot file: %w", err)
	}
	defer out.Close()

	var w io.Writer = out
	var zw *zstd.Encoder
	if compress {
		if zw, err = zstd.NewWriter(out); err != nil {
			return "", fmt.Errorf("creating zstd writer: %w", err)
		}
		w = zw
	}

	if err := Encode(w, s, f); err != nil {
		if zw != nil {
			zw.Close()
		}
		return "", err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return "", fmt.Errorf("closing zstd writer: %w", err)
		}
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing snapshot file: %w", err)
	}
	return path, nil
}

// Load reads a snapshot file, inferring format and compression from its name.
func Load(path string) (*Snapshot, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: snapshot path is empty", model.ErrInvalidArgument)
	}
	f, compressed, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer in.Close()

	var r io.Reader = in
	if compressed {
		zr, err := zstd.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	return Decode(r, f)
}

func Encode(w io.Writer, s *Snapshot, f Format) error {
	switch f {
	case JSON:
		if err := json.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("encoding snapshot JSON: %w", err)
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding snapshot YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding snapshot YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown snapshot format %q", model.ErrInvalidArgument, f)
	}
	return nil
}

func Decode(r io.Reader, f Format) (*Snapshot, error) {
	var s Snapshot
	switch f {
	case JSON:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding snapshot JSON: %w", err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding snapshot YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown snapshot format %q", model.ErrInvalidArgument, f)
	}
	return &s, nil
}
