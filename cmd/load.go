package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/metadata"
	"github.com/jcdickinson/clrdoc/internal/repository"
	"github.com/jcdickinson/clrdoc/internal/snapshot"
	"github.com/jcdickinson/clrdoc/internal/xmldoc"
	"golang.org/x/sync/errgroup"
)

// input is one metadata file and the documentation file that goes with it.
type input struct {
	metadata string
	doc      string
}

// docPathFor returns the documentation file next to a metadata file, such as
// Widgets.xml for Widgets.json.zst, or "" when there is none.
func docPathFor(metadataPath, suffix string) string {
	base := strings.TrimSuffix(metadataPath, ".zst")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	candidate := base + suffix
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}

func newInput(metadataPath, docPath string) input {
	if docPath == "" && !snapshot.IsSnapshot(metadataPath) {
		docPath = docPathFor(metadataPath, cfg.Docs.Suffix)
	}
	return input{metadata: metadataPath, doc: docPath}
}

// loadRepository builds a repository from in. Snapshots are restored as they
// are; otherwise the metadata and documentation files are read concurrently
// and correlated.
func loadRepository(in input) (*repository.Repository, error) {
	repo := repository.New(repository.WithLogger(logger))

	if snapshot.IsSnapshot(in.metadata) {
		s, err := snapshot.Load(in.metadata)
		if err != nil {
			return nil, err
		}
		if err := repo.Restore(s.Assembly, s.Namespaces...); err != nil {
			return nil, fmt.Errorf("restoring %s: %w", in.metadata, err)
		}
		return repo, nil
	}

	var (
		g      errgroup.Group
		module *metadata.Module
		doc    *xmldoc.Documentation
	)
	g.Go(func() error {
		m, err := metadata.ReadFile(in.metadata)
		module = m
		return err
	})
	if in.doc != "" {
		g.Go(func() error {
			p := xmldoc.Parser{Logger: logger}
			d, err := p.ReadFile(in.doc)
			doc = d
			return err
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("failed to read inputs", "metadata", in.metadata, "doc", in.doc, "error", err)
		return nil, err
	}

	if err := repo.Load(module); err != nil {
		return nil, err
	}
	if doc != nil {
		if err := repo.Correlate(doc); err != nil {
			return nil, fmt.Errorf("correlating %s: %w", in.doc, err)
		}
	} else {
		logger.Info("no documentation file", "metadata", in.metadata)
	}
	return repo, nil
}
