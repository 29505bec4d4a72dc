package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Freedom18946/ferox-encryptor"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <container>",
	Short: "Decrypt a .feroxcrypt container back to its original file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	defer func() {
		for i := range password {
			password[i] = 0
		}
	}()

	g := signalGuard.New()
	defer signalGuard.Release(g)

	containerPath := args[0]
	err = ferox.Decrypt(ferox.DecryptRequest{
		ContainerPath:  containerPath,
		ForceOverwrite: forceFlag,
		Password:       password,
		Keyfile:        keyfileFlag,
		Guard:          g,
		Progress:       &cliProgress{label: containerPath},
	})
	if err != nil {
		return err
	}

	fmt.Printf("decrypted %s\n", containerPath)
	return nil
}
