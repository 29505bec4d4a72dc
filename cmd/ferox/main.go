// Command ferox encrypts and decrypts local files into self-describing
// .feroxcrypt containers. It is the CLI collaborator described by the
// ferox package: it owns argument parsing, password prompting, signal
// handling, and human-readable output, and calls into package ferox for
// every cryptographic operation.
package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Freedom18946/ferox-encryptor/cmd/ferox/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := cmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
