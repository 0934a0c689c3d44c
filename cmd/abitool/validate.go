package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	coreabi "github.com/wasmabi/serializer/internal/core/abi"
	pkgabi "github.com/wasmabi/serializer/pkg/abi"
)

func newValidateCmd() *cobra.Command {
	var maxTime time.Duration
	cmd := &cobra.Command{
		Use:   "validate <abi.json>",
		Short: "Load and validate an ABI document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if _, err := coreabi.NewSerializer(doc, maxTime, nil, nil); err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			pterm.Success.Printfln("%s is valid (%d structs, %d typedefs, %d actions, %d tables)",
				args[0], len(doc.Structs), len(doc.Typedefs), len(doc.Actions), len(doc.Tables))
			return nil
		},
	}
	cmd.Flags().DurationVar(&maxTime, "max-time", 2*time.Second, "validation deadline budget")
	return cmd
}

func loadDocument(path string) (*pkgabi.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc pkgabi.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &doc, nil
}
