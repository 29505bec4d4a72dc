package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Freedom18946/ferox-encryptor"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <file>",
	Short: "Encrypt a single file into a .feroxcrypt container",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncrypt,
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	level, err := ferox.ParseSecurityLevel(levelFlag)
	if err != nil {
		return err
	}

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

	sourcePath := args[0]
	err = ferox.Encrypt(ferox.EncryptRequest{
		SourcePath:     sourcePath,
		ForceOverwrite: forceFlag,
		Password:       password,
		Level:          level,
		Keyfile:        keyfileFlag,
		Guard:          g,
		Progress:       &cliProgress{label: sourcePath},
	})
	if err != nil {
		return err
	}

	fmt.Printf("encrypted %s -> %s.feroxcrypt\n", sourcePath, sourcePath)
	return nil
}
