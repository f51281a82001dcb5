// Command onnxmeta compares the tensor interfaces of ONNX models and
// writes validated metadata records into them.
//
// Exit codes: 0 on success (models compatible / metadata written /
// template generated), 1 on incompatibility or any error.
package main

import (
	"os"

	onnxmeta "github.com/hgsolutions/ONNX-Metadata"
)

// CLI exit codes.
const (
	// ExitSuccess indicates the operation completed successfully.
	ExitSuccess = 0

	// ExitError indicates incompatible models or any tool error.
	ExitError = 1
)

func main() {
	cmd := onnxmeta.NewCommand()
	if err := cmd.Execute(); err != nil {
		onnxmeta.PrintError(os.Stderr, err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
