package cmd

import (
	"log"
	"log/slog"
	"os"

	"github.com/jcdickinson/clrdoc/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
	silent     bool

	cfg    *config.Config
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "clrdoc",
	Short: "Merge compiled module metadata with XML documentation",
	Long: `clrdoc builds a namespace tree from module metadata, correlates it with the
XML documentation file produced by the compiler and renders the result as
markdown pages or exportable snapshots.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: clrdoc.* in . or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().BoolVarP(&silent, "silent", "s", false, "log errors only")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "silent")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}

	switch {
	case verbose:
		c.Log.Level = slog.LevelDebug
	case silent:
		c.Log.Level = slog.LevelError
	}

	cfg = c
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.Log.Level}))
	return nil
}
