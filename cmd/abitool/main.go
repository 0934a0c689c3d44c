// Command abitool validates an ABI document and transcodes values against it from the
// shell, for exercising the serializer without writing a Go program.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	coreabi "github.com/wasmabi/serializer/internal/core/abi"
)

func main() {
	root := &cobra.Command{
		Use:   "abitool",
		Short: "Validate and transcode against a wasm-style ABI document",
	}
	root.AddCommand(newValidateCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDescribeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "List the built-in registry's recognized type names",
		RunE: func(cmd *cobra.Command, args []string) error {
			builtins := coreabi.NewRegistry()
			reg := builtins.AsCodecRegistry()
			for _, name := range builtins.Names() {
				kind := "builtin"
				if bits, ok := reg.IntegerBits(name); ok {
					kind = fmt.Sprintf("integer(%d bits)", bits)
				}
				fmt.Printf("%-12s %s\n", name, kind)
			}
			return nil
		},
	}
}
