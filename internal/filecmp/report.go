package filecmp

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Status classifies one tensor name of a comparison.
type Status string

// Entry statuses. The left file is the reference.
const (
	StatusMatch    Status = "match"
	StatusMismatch Status = "mismatch"
	StatusMissing  Status = "missing" // in left only
	StatusExtra    Status = "extra"   // in right only
)

// Entry is the outcome for one tensor name.
type Entry struct {
	Name     string   `yaml:"name"`
	Status   Status   `yaml:"status"`
	DType    string   `yaml:"dtype,omitempty"`
	Shape    []int    `yaml:"shape,flow,omitempty"`
	MaxError *float64 `yaml:"max_error,omitempty"`
	Reason   string   `yaml:"reason,omitempty"`
}

// Report is the result of comparing two checkpoints.
type Report struct {
	Left      string  `yaml:"left"`
	Right     string  `yaml:"right"`
	Identical bool    `yaml:"identical"` // byte-identical files
	Precision float64 `yaml:"precision"`
	Entries   []Entry `yaml:"entries"`
}

// Count returns the number of entries with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == s {
			n++
		}
	}
	return n
}

// OK reports whether every tensor is present on both sides and matches.
func (r *Report) OK() bool {
	return r.Count(StatusMatch) == len(r.Entries)
}

// WriteYAML encodes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText writes a table with one row per tensor and a summary line.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tSTATUS\tDTYPE\tSHAPE\tMAX ERROR\tREASON\n")
	for _, e := range r.Entries {
		maxErr := "-"
		if e.MaxError != nil {
			maxErr = fmt.Sprintf("%.3g", *e.MaxError)
		}
		shape := "-"
		if e.Shape != nil {
			shape = fmt.Sprint(e.Shape)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.Name, e.Status, orDash(e.DType), shape, maxErr, e.Reason)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d match, %d mismatch, %d missing, %d extra (precision %g)\n",
		r.Count(StatusMatch), r.Count(StatusMismatch), r.Count(StatusMissing), r.Count(StatusExtra), r.Precision)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
