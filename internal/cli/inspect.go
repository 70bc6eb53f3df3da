package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdejongh/vidupe/pkg/quality"
	"github.com/sdejongh/vidupe/pkg/storage"
)

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "stats FOLDER",
		Short: "Count files and videos under a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			roots, err := resolveRoots(args)
			if err != nil {
				return err
			}
			e, err := setup(&flags)
			if err != nil {
				return err
			}
			defer e.Close()

			f, err := e.formatter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return f.Stats(roots[0], e.scanner().Stats(ctx, roots[0]))
		},
	}

	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", nil, "glob patterns to exclude")
	cmd.Flags().StringSliceVar(&flags.Extensions, "ext", nil, "video extensions to recognize (default from config)")
	return cmd
}

// NewContentsCommand creates the contents command
func NewContentsCommand() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "contents FOLDER",
		Short: "List every file under a folder with its size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			roots, err := resolveRoots(args)
			if err != nil {
				return err
			}
			e, err := setup(&flags)
			if err != nil {
				return err
			}
			defer e.Close()

			if !storage.IsDir(ctx, e.backend, roots[0]) {
				return fmt.Errorf("not a directory: %s", roots[0])
			}

			f, err := e.formatter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return f.Contents(roots[0], e.scanner().Contents(ctx, roots[0]))
		},
	}

	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", nil, "glob patterns to exclude")
	return cmd
}

// NewScoreCommand creates the score command
func NewScoreCommand() *cobra.Command {
	var (
		size   int64
		folder bool
	)

	cmd := &cobra.Command{
		Use:   "score NAME",
		Short: "Show the quality score of a file or folder name",
		Long: `Score NAME the way duplicates are ranked: codec, resolution and source are
read from the name and combined with the size given by --size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 0 {
				return fmt.Errorf("size must not be negative: %d", size)
			}
			e, err := setup(nil)
			if err != nil {
				return err
			}
			defer e.Close()

			f, err := e.formatter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return f.Score(quality.Score(args[0], size, folder))
		},
	}

	cmd.Flags().Int64Var(&size, "size", 0, "size in bytes")
	cmd.Flags().BoolVar(&folder, "folder", false, "score NAME as a folder")
	return cmd
}
