package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdejongh/vidupe/pkg/fileops"
	"github.com/sdejongh/vidupe/pkg/logging"
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete FILE...",
		Short: "Delete duplicate files",
		Long: `Delete every FILE independently and report the outcome of each. Without
--force nothing is removed; the files and their total size are listed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paths, err := resolveRoots(args)
			if err != nil {
				return err
			}
			e, err := setup(nil)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			if !force {
				for _, p := range paths {
					fmt.Fprintf(out, "  %s\n", p)
				}
				total := fileops.TotalSize(ctx, e.backend, paths)
				fmt.Fprintf(out, "\nWould delete %d files (%s). Re-run with --force to delete.\n", len(paths), fileops.FormatSize(total))
				return nil
			}

			e.logger.Info(ctx, "Deleting files", logging.Fields{"count": len(paths)})
			outcomes := fileops.NewDeleter(e.backend, e.logger).Delete(ctx, paths)

			f, err := e.formatter(out)
			if err != nil {
				return err
			}
			if err := f.Deletions(paths, outcomes); err != nil {
				return err
			}

			for _, o := range outcomes {
				if !o.OK() {
					return fmt.Errorf("some files could not be deleted")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "actually delete the files")
	return cmd
}
