package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/born-ml/tensorcheck/internal/safetensors"
	"github.com/born-ml/tensorcheck/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeCheckpoint(t *testing.T, dir, name string, tensors map[string]*tensor.RawTensor) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, safetensors.Write(path, tensors, map[string]string{"format": "pt"}))
	return path
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"diff", "inspect", "version"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "expected subcommand %q", name)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("precision"))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tensorcmp "+version+"\n", out)
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	left := writeCheckpoint(t, dir, "left.safetensors", map[string]*tensor.RawTensor{
		"w": tensor.Vector(1.0, 2.0),
		"b": tensor.Vector[float32](0.5),
	})
	near := writeCheckpoint(t, dir, "near.safetensors", map[string]*tensor.RawTensor{
		"w": tensor.Vector(1.0, 2.001),
		"b": tensor.Vector[float32](0.5),
	})

	out, err := run(t, "diff", left, near)
	assert.ErrorIs(t, err, errCheckpointsDiffer)
	assert.Contains(t, out, "1 match, 1 mismatch, 0 missing, 0 extra")

	out, err = run(t, "diff", "--precision=0.01", left, near)
	require.NoError(t, err)
	assert.Contains(t, out, "2 match, 0 mismatch")
}

func TestDiff_YAML(t *testing.T) {
	dir := t.TempDir()
	left := writeCheckpoint(t, dir, "left.safetensors", map[string]*tensor.RawTensor{"w": tensor.Vector(1.0)})
	right := writeCheckpoint(t, dir, "right.safetensors", map[string]*tensor.RawTensor{"v": tensor.Vector(1.0)})

	out, err := run(t, "diff", "--format=yaml", left, right)
	assert.ErrorIs(t, err, errCheckpointsDiffer)

	var report struct {
		Entries []struct {
			Name   string `yaml:"name"`
			Status string `yaml:"status"`
		} `yaml:"entries"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "v", report.Entries[0].Name)
	assert.Equal(t, "extra", report.Entries[0].Status)
	assert.Equal(t, "missing", report.Entries[1].Status)
}

func TestDiff_Errors(t *testing.T) {
	_, err := run(t, "diff", "only-one")
	assert.Error(t, err)

	_, err = run(t, "diff", "--format=json", "a", "b")
	assert.ErrorContains(t, err, "output.format")

	dir := t.TempDir()
	_, err = run(t, "diff", filepath.Join(dir, "a"), filepath.Join(dir, "b"))
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := writeCheckpoint(t, t.TempDir(), "model.safetensors", map[string]*tensor.RawTensor{
		"weight": tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}),
	})

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "format = pt")
	assert.Contains(t, out, "weight")
	assert.Contains(t, out, "[2 3]")

	out, err = run(t, "inspect", "--format=yaml", path)
	require.NoError(t, err)

	var summary fileSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &summary))
	require.Len(t, summary.Tensors, 1)
	assert.Equal(t, "F32", summary.Tensors[0].DType)
	assert.Equal(t, int64(24), summary.Tensors[0].Bytes)
	assert.Len(t, summary.Checksum, 64)
}

func TestSetupLogger(t *testing.T) {
	require.NoError(t, setupLogger(3))
	assert.Equal(t, "3", klogFlags.Lookup("v").Value.String())
	require.NoError(t, setupLogger(0))
}
