package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	coreabi "github.com/wasmabi/serializer/internal/core/abi"
)

func newDecodeCmd() *cobra.Command {
	var abiPath, typeName string
	var maxTime time.Duration
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a hex-encoded binary payload as the given ABI type, printed as JSON",
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
			buf, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decoding hex payload: %w", err)
			}
			value, err := serializer.BinaryToValue(typeName, buf, maxTime)
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			out, err := json.MarshalIndent(value, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&abiPath, "abi", "", "path to the ABI document")
	cmd.Flags().StringVar(&typeName, "type", "", "ABI type name to decode as")
	cmd.Flags().DurationVar(&maxTime, "max-time", 2*time.Second, "serialization deadline budget")
	cmd.MarkFlagRequired("abi")
	cmd.MarkFlagRequired("type")
	return cmd
}
