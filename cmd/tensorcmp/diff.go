package main

import (
	"io"

	"github.com/born-ml/tensorcheck/internal/compare"
	"github.com/born-ml/tensorcheck/internal/config"
	"github.com/born-ml/tensorcheck/internal/filecmp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// errCheckpointsDiffer makes the process exit non-zero after the report is printed.
var errCheckpointsDiffer = errors.New("checkpoints differ")

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff LEFT RIGHT",
		Short: "Compare two safetensors files tensor by tensor",
		Long: `Compare every tensor of LEFT with the tensor of the same name in RIGHT.

Tensors match when their shapes agree, their NaNs sit at the same positions and
the largest absolute difference is within --precision. Tensors present on only
one side are reported as missing (LEFT only) or extra (RIGHT only). The command
exits non-zero unless every tensor matches.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			comparator := compare.New(compare.WithPrecision(cfg.Compare.Precision))
			report, err := filecmp.New(comparator, cfg.Compare.Workers).CompareFiles(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			klog.V(1).Infof("%d tensors compared, identical files: %v", len(report.Entries), report.Identical)

			if err := writeReport(cmd.OutOrStdout(), cfg.Output.Format, report); err != nil {
				return errors.Wrap(err, "write report")
			}
			if !report.OK() {
				return errCheckpointsDiffer
			}
			return nil
		},
	}
}

func writeReport(w io.Writer, format string, report *filecmp.Report) error {
	if format == config.FormatYAML {
		return report.WriteYAML(w)
	}
	return report.WriteText(w)
}
