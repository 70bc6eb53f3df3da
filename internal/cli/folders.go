package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdejongh/vidupe/pkg/detect"
	"github.com/sdejongh/vidupe/pkg/group"
	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/output"
)

// foldersFlags holds folders command flags
type foldersFlags struct {
	scanFlags
	Mode      string
	Threshold float64
}

// NewFoldersCommand creates the folders command
func NewFoldersCommand() *cobra.Command {
	var flags foldersFlags

	cmd := &cobra.Command{
		Use:   "folders LIBRARY...",
		Short: "Find duplicate movie folders by name",
		Long: `Compare the names of the immediate subdirectories of every LIBRARY and
group those that look like the same title. In exact mode names must match once
years, resolutions, sources, codecs and release tags are stripped. In fuzzy
mode names only need to reach the similarity threshold against the first
folder of a group. Folders from different libraries can be grouped together.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolders(cmd, args, &flags)
		},
	}

	addScanFlags(cmd, &flags.scanFlags)
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", "match mode: exact, fuzzy (default from config)")
	cmd.Flags().Float64VarP(&flags.Threshold, "threshold", "t", 0, "fuzzy similarity in percent, clamped to 50..100 (default from config)")

	return cmd
}

func runFolders(cmd *cobra.Command, args []string, flags *foldersFlags) error {
	ctx := cmd.Context()

	roots, err := resolveRoots(args)
	if err != nil {
		return err
	}

	e, err := setup(&flags.scanFlags)
	if err != nil {
		return err
	}
	defer e.Close()

	mode := e.cfg.Scan.Mode
	if flags.Mode != "" {
		mode = models.MatchMode(flags.Mode)
	}
	percent := e.cfg.Scan.Threshold
	if cmd.Flags().Changed("threshold") {
		percent = flags.Threshold
	}

	store := e.tagStore(ctx)

	var (
		report *models.FolderScanReport
		runErr error
	)
	e.withProgress(func(engine *detect.Engine) {
		report, runErr = engine.RunFolders(ctx, detect.FolderRequest{
			Roots:     roots,
			Mode:      mode,
			Threshold: group.ClampThreshold(percent),
			Tags:      store,
		})
	})
	if runErr != nil {
		return fmt.Errorf("scan failed: %w", runErr)
	}

	if !e.cfg.Output.Quiet {
		f, err := e.formatter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := f.Folders(report); err != nil {
			return err
		}
	}

	if err := e.writeReportFile(flags.Report, func(f output.Formatter) error { return f.Folders(report) }); err != nil {
		return err
	}

	exitStatus(e, report.Status)
	return nil
}
