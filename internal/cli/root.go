package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the vidupe command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vidupe",
		Short: "Find duplicate movie copies and rank them by quality",
		Long: `vidupe finds duplicate video files and duplicate movie folders across one or
more libraries, scores every copy from what its name and size reveal, and helps
decide which copies to keep.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewFilesCommand())
	rootCmd.AddCommand(NewFoldersCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewContentsCommand())
	rootCmd.AddCommand(NewScoreCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewTagsCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
