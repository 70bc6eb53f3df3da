package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdejongh/vidupe/pkg/detect"
	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/output"
)

// NewFilesCommand creates the files command
func NewFilesCommand() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "files LIBRARY",
		Short: "Find movie folders holding more than one video",
		Long: `Scan every immediate subdirectory of LIBRARY and report those containing
two or more video files at any depth. Files are ranked by quality and the best
copy of each folder is marked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, args[0], &flags)
		},
	}

	addScanFlags(cmd, &flags)
	return cmd
}

func runFiles(cmd *cobra.Command, root string, flags *scanFlags) error {
	ctx := cmd.Context()

	roots, err := resolveRoots([]string{root})
	if err != nil {
		return err
	}

	e, err := setup(flags)
	if err != nil {
		return err
	}
	defer e.Close()

	var (
		report *models.FileScanReport
		runErr error
	)
	e.withProgress(func(engine *detect.Engine) {
		report, runErr = engine.RunFiles(ctx, roots[0])
	})
	if runErr != nil {
		return fmt.Errorf("scan failed: %w", runErr)
	}

	if !e.cfg.Output.Quiet {
		f, err := e.formatter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := f.Files(report); err != nil {
			return err
		}
	}

	if err := e.writeReportFile(flags.Report, func(f output.Formatter) error { return f.Files(report) }); err != nil {
		return err
	}

	exitStatus(e, report.Status)
	return nil
}
