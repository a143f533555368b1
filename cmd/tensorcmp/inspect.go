package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/born-ml/tensorcheck/internal/config"
	"github.com/born-ml/tensorcheck/internal/safetensors"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type tensorSummary struct {
	Name  string `yaml:"name"`
	DType string `yaml:"dtype"`
	Shape []int  `yaml:"shape,flow"`
	Bytes int64  `yaml:"bytes"`
}

type fileSummary struct {
	Path     string            `yaml:"path"`
	Checksum string            `yaml:"sha256"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
	Tensors  []tensorSummary   `yaml:"tensors"`
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the tensors of a safetensors file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			summary, err := summarize(args[0])
			if err != nil {
				return err
			}
			if cfg.Output.Format == config.FormatYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(summary); err != nil {
					return errors.Wrap(err, "encode summary")
				}
				return enc.Close()
			}
			return writeSummaryText(cmd.OutOrStdout(), summary)
		},
	}
}

func summarize(path string) (*fileSummary, error) {
	sum, err := safetensors.Checksum(path)
	if err != nil {
		return nil, err
	}
	r, err := safetensors.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()

	summary := &fileSummary{Path: path, Checksum: sum, Metadata: r.Metadata()}
	for _, name := range r.Names() {
		info, err := r.Info(name)
		if err != nil {
			return nil, err
		}
		summary.Tensors = append(summary.Tensors, tensorSummary{
			Name:  name,
			DType: string(info.DType),
			Shape: append([]int{}, info.Shape...),
			Bytes: info.DataOffsets[1] - info.DataOffsets[0],
		})
	}
	return summary, nil
}

func writeSummaryText(w io.Writer, s *fileSummary) error {
	fmt.Fprintf(w, "%s (sha256 %s)\n", s.Path, s.Checksum)
	for _, k := range slices.Sorted(maps.Keys(s.Metadata)) {
		fmt.Fprintf(w, "  %s = %s\n", k, s.Metadata[k])
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tDTYPE\tSHAPE\tBYTES\n")
	for _, t := range s.Tensors {
		fmt.Fprintf(tw, "%s\t%s\t%v\t%d\n", t.Name, t.DType, t.Shape, t.Bytes)
	}
	return tw.Flush()
}
