package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/scanner"
	"github.com/sdejongh/vidupe/pkg/storage"
	"github.com/sdejongh/vidupe/pkg/tags"
)

// NewTagsCommand creates the tags command
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tagged folders",
		Long: `Tagged folders are the copies an operator decided to keep. Tags are stored
in a small JSON document and shown in folder reports.`,
	}

	cmd.AddCommand(newTagsListCommand())
	cmd.AddCommand(newTagsAddCommand())
	cmd.AddCommand(newTagsRemoveCommand())
	cmd.AddCommand(newTagsClearCommand())
	cmd.AddCommand(newTagsExportCommand())

	return cmd
}

// withTags opens the tag store for a tags subcommand
func withTags(cmd *cobra.Command, fn func(ctx context.Context, e *env, store *tags.Store) error) error {
	ctx := cmd.Context()
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	return fn(ctx, e, e.tagStore(ctx))
}

func newTagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tagged folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTags(cmd, func(ctx context.Context, e *env, store *tags.Store) error {
				out := cmd.OutOrStdout()
				for _, p := range store.Paths() {
					at, _ := store.TaggedAt(p)
					if at.IsZero() {
						fmt.Fprintf(out, "%s\n", p)
						continue
					}
					fmt.Fprintf(out, "%s  (tagged %s)\n", p, at.Local().Format("2006-01-02 15:04"))
				}
				if !e.cfg.Output.Quiet {
					fmt.Fprintf(out, "\n%d tagged folders\n", store.Len())
				}
				return nil
			})
		},
	}
}

func newTagsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add FOLDER...",
		Short: "Tag folders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolveRoots(args)
			if err != nil {
				return err
			}
			return withTags(cmd, func(ctx context.Context, e *env, store *tags.Store) error {
				for _, p := range paths {
					if !storage.IsDir(ctx, e.backend, p) {
						return fmt.Errorf("not a directory: %s", p)
					}
				}
				if err := store.Add(ctx, paths...); err != nil {
					return err
				}
				if !e.cfg.Output.Quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "Tagged %d folders\n", len(paths))
				}
				return nil
			})
		},
	}
}

func newTagsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove FOLDER...",
		Short: "Untag folders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolveRoots(args)
			if err != nil {
				return err
			}
			return withTags(cmd, func(ctx context.Context, e *env, store *tags.Store) error {
				if err := store.Remove(ctx, paths...); err != nil {
					return err
				}
				if !e.cfg.Output.Quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "Untagged %d folders\n", len(paths))
				}
				return nil
			})
		},
	}
}

func newTagsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Untag every folder and delete the tag store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTags(cmd, func(ctx context.Context, e *env, store *tags.Store) error {
				n := store.Len()
				if err := store.Clear(ctx); err != nil {
					return err
				}
				if !e.cfg.Output.Quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d tags\n", n)
				}
				return nil
			})
		},
	}
}

func newTagsExportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the tagged folders as a text report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTags(cmd, func(ctx context.Context, e *env, store *tags.Store) error {
				var w io.Writer = cmd.OutOrStdout()
				if file != "" {
					f, err := os.Create(file)
					if err != nil {
						return fmt.Errorf("failed to create export file: %w", err)
					}
					defer f.Close()
					w = f
				}

				if err := tags.Export(w, store.Paths(), folderStats(ctx, e.backend, e.scanner())); err != nil {
					return err
				}
				if file != "" && !e.cfg.Output.Quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tagged folders to %s\n", store.Len(), file)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "write to this file instead of stdout")
	return cmd
}

// folderStats computes stats for folders that still exist
func folderStats(ctx context.Context, backend storage.Backend, s *scanner.Scanner) tags.StatsFunc {
	return func(path string) (models.FolderStats, bool) {
		if !storage.IsDir(ctx, backend, path) {
			return models.FolderStats{}, false
		}
		return s.Stats(ctx, path), true
	}
}
