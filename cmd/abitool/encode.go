package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	coreabi "github.com/wasmabi/serializer/internal/core/abi"
	pkgabi "github.com/wasmabi/serializer/pkg/abi"
)

func newEncodeCmd() *cobra.Command {
	var abiPath, typeName string
	var maxTime time.Duration
	cmd := &cobra.Command{
		Use:   "encode <value.json>",
		Short: "Encode a JSON value as the given ABI type, printed as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(abiPath)
			if err != nil {
				return err
			}
			serializer, err := coreabi.NewSerializer(doc, maxTime, nil, nil)
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			value, err := decodeJSONValue(raw)
			if err != nil {
				return err
			}
			bin, err := serializer.ValueToBinary(typeName, value, maxTime)
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			fmt.Println(hex.EncodeToString(bin))
			return nil
		},
	}
	cmd.Flags().StringVar(&abiPath, "abi", "", "path to the ABI document")
	cmd.Flags().StringVar(&typeName, "type", "", "ABI type name to encode as")
	cmd.Flags().DurationVar(&maxTime, "max-time", 2*time.Second, "serialization deadline budget")
	cmd.MarkFlagRequired("abi")
	cmd.MarkFlagRequired("type")
	return cmd
}

// decodeJSONValue parses raw into the order-preserving representation valueToBinary
// expects, whatever its top-level shape — object, array, or scalar.
func decodeJSONValue(raw []byte) (interface{}, error) {
	return pkgabi.DecodeValue(raw)
}
