package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Freedom18946/ferox-encryptor"
)

var keyfileLengthFlag int

var generateKeyCmd = &cobra.Command{
	Use:   "generate-key <path>",
	Short: "Generate a random keyfile",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerateKey,
}

func init() {
	generateKeyCmd.Flags().IntVar(&keyfileLengthFlag, "length", 64, "keyfile length in bytes")
}

func runGenerateKey(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := ferox.GenerateKeyfile(path, keyfileLengthFlag, forceFlag); err != nil {
		return err
	}
	fmt.Printf("generated keyfile: %s (%d bytes)\n", path, keyfileLengthFlag)
	return nil
}
