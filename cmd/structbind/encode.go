package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var typeName, valueFile, output string
	var asHex bool
	cmd := &cobra.Command{
		Use:   "encode <input> --type NAME --value FILE",
		Short: "Encode a yaml or json value as one type",
		Long: `Encode reads a value from --value (yaml or json, - for stdin) and writes
exactly the size of --type in host byte order to -o or stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBundle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			u, err := findUnit(b, typeName)
			if err != nil {
				return err
			}
			data, err := readInput(valueFile)
			if err != nil {
				return err
			}
			v, err := parseValue(data)
			if err != nil {
				return err
			}
			out, err := u.Encode(v)
			if err != nil {
				return err
			}
			if asHex {
				out = []byte(hex.EncodeToString(out) + "\n")
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "public type name or btf_type_<id>")
	cmd.Flags().StringVar(&valueFile, "value", "", "yaml or json value, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&asHex, "hex", false, "write hex text instead of raw bytes")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
