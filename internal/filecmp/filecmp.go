// Package filecmp compares two SafeTensors checkpoints tensor by tensor.
package filecmp

import (
	"context"
	"math"
	"sort"

	"github.com/born-ml/tensorcheck/internal/compare"
	"github.com/born-ml/tensorcheck/internal/parallel"
	"github.com/born-ml/tensorcheck/internal/safetensors"
	"github.com/born-ml/tensorcheck/internal/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Comparer compares checkpoints with a Comparator.
type Comparer struct {
	comparator *compare.Comparator
	workers    parallel.Config
}

// New returns a Comparer running at most workers comparisons at once.
// workers <= 0 uses one worker per CPU.
func New(c *compare.Comparator, workers int) *Comparer {
	return &Comparer{
		comparator: c,
		workers:    parallel.WithWorkers(workers),
	}
}

// CompareFiles loads both files and compares every tensor name found in either.
func (c *Comparer) CompareFiles(ctx context.Context, left, right string) (*Report, error) {
	leftSum, err := safetensors.Checksum(left)
	if err != nil {
		return nil, errors.WithMessage(err, "checksum left")
	}
	rightSum, err := safetensors.Checksum(right)
	if err != nil {
		return nil, errors.WithMessage(err, "checksum right")
	}

	leftTensors, _, err := safetensors.Load(left)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", left)
	}
	rightTensors, _, err := safetensors.Load(right)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", right)
	}
	klog.V(1).Infof("comparing %s (%d tensors) with %s (%d tensors)", left, len(leftTensors), right, len(rightTensors))

	entries, err := c.CompareTensors(ctx, leftTensors, rightTensors)
	if err != nil {
		return nil, err
	}
	return &Report{
		Left:      left,
		Right:     right,
		Identical: leftSum == rightSum,
		Precision: c.comparator.Precision(),
		Entries:   entries,
	}, nil
}

// CompareTensors compares two named tensor sets. Entries are sorted by name.
// Each pair is compared independently on the worker pool.
func (c *Comparer) CompareTensors(ctx context.Context, left, right map[string]*tensor.RawTensor) ([]Entry, error) {
	names := make([]string, 0, len(left)+len(right))
	for name := range left {
		names = append(names, name)
	}
	for name := range right {
		if _, ok := left[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	entries := make([]Entry, len(names))
	err := parallel.ForEach(ctx, len(names), func(_ context.Context, i int) error {
		name := names[i]
		entries[i] = c.compareOne(name, left[name], right[name])
		klog.V(3).Infof("%s: %s", name, entries[i].Status)
		return nil
	}, c.workers)
	if err != nil {
		return nil, errors.Wrap(err, "comparing tensors")
	}
	return entries, nil
}

func (c *Comparer) compareOne(name string, l, r *tensor.RawTensor) Entry {
	switch {
	case r == nil:
		return describe(Entry{Name: name, Status: StatusMissing}, l)
	case l == nil:
		return describe(Entry{Name: name, Status: StatusExtra}, r)
	}

	e := describe(Entry{Name: name, Status: StatusMatch}, l)
	if maxErr, err := c.comparator.MaxError(l, r); err == nil && !math.IsNaN(maxErr) {
		e.MaxError = &maxErr
	}

	if err := c.comparator.Equal(l, r); err != nil {
		e.Status = StatusMismatch
		var mismatch *compare.MismatchError
		if errors.As(err, &mismatch) {
			e.Reason = mismatch.Reason
		} else {
			e.Reason = err.Error()
		}
	}
	if l.DType() != r.DType() && e.Reason == "" {
		e.Reason = "dtype " + r.DType().String() + " on the right"
	}
	return e
}

func describe(e Entry, t *tensor.RawTensor) Entry {
	e.DType = t.DType().String()
	e.Shape = append([]int{}, t.Shape()...)
	return e
}
