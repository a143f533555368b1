// Package main provides the tensorcmp CLI, which compares tensor checkpoints
// within a numeric tolerance.
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

func main() {
	err := NewRootCmd().Execute()
	klog.Flush()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
