package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/jcdickinson/clrdoc/internal/config"
	"github.com/jcdickinson/clrdoc/internal/model"
	"github.com/jcdickinson/clrdoc/internal/snapshot"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	exportDocs   []string
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <metadata>...",
	Short: "Write correlated snapshots of one or more modules",
	Long: `Write one snapshot per metadata file. The n-th --doc flag belongs to the
n-th metadata file; files without one use the documentation file next to
them, if any.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringArrayVar(&exportDocs, "doc", nil, "XML documentation file, repeatable")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default: output.path)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "snapshot format, json or yaml (default: output.format)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if len(exportDocs) > len(args) {
		return fmt.Errorf("got %d --doc files for %d metadata files", len(exportDocs), len(args))
	}

	out := cfg.Output
	if exportOut != "" {
		out.Path = exportOut
	}
	if exportFormat != "" {
		out.Format = config.Format(exportFormat)
		check := *cfg
		check.Output = out
		if err := check.Validate(); err != nil {
			return err
		}
	}

	inputs := make([]input, len(args))
	for i, path := range args {
		doc := ""
		if i < len(exportDocs) {
			doc = exportDocs[i]
		}
		inputs[i] = newInput(path, doc)
	}

	paths, err := exportAll(cmd.Context(), inputs, out)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func exportAll(ctx context.Context, inputs []input, out config.OutputConfig) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var (
		mu      sync.Mutex
		claimed = make(map[string]string, len(inputs))
	)
	// claim reserves the snapshot name of an assembly for one input.
	claim := func(assembly, metadata string) error {
		mu.Lock()
		defer mu.Unlock()
		if prev, ok := claimed[assembly]; ok {
			return fmt.Errorf("%w: %s and %s both export assembly %s", model.ErrInvalidArgument, prev, metadata, assembly)
		}
		claimed[assembly] = metadata
		return nil
	}

	paths := make([]string, len(inputs))
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			repo, err := loadRepository(in)
			if err != nil {
				return fmt.Errorf("loading %s: %w", in.metadata, err)
			}

			assembly := fileStem(in.metadata)
			if names := repo.Assemblies(); len(names) > 0 && names[0] != "" {
				assembly = names[0]
			}
			if err := claim(assembly, in.metadata); err != nil {
				return err
			}
			s := &snapshot.Snapshot{Assembly: assembly, Namespaces: repo.Namespaces()}
			path, err := snapshot.Save(out.Path, s, snapshot.Format(out.Format), out.Compress)
			if err != nil {
				return fmt.Errorf("exporting %s: %w", in.metadata, err)
			}
			logger.Info("snapshot written", "path", path)
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// fileStem returns the file name of path without directory, compression
// suffix and extension.
func fileStem(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".zst")
	return strings.TrimSuffix(base, filepath.Ext(base))
}
