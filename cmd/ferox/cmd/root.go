package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Freedom18946/ferox-encryptor/internal/guard"
)

var (
	// Flag values. level, force, keyfile and verbose are persistent flags
	// on the root command; the rest are registered on the batch commands.
	levelFlag    string
	forceFlag     bool
	keyfileFlag   string
	recursiveFlag bool
	includeFlag   []string
	excludeFlag   []string
	workersFlag   int
	dryRunFlag    bool
	verboseFlag   bool
)

// signalGuard installs the OS signal handler when this package is
// initialized, and is wired into each core call so Ctrl-C during a running operation unlinks
// the in-flight output (spec §4.6 extended to the CLI layer).
var signalGuard = guard.Install()

var rootCmd = &cobra.Command{
	Use:   "ferox",
	Short: "Encrypt and decrypt local files into authenticated containers",
	Long: `ferox turns a plaintext file into a single self-describing
".feroxcrypt" container (AES-256-CTR + HMAC-SHA256, Argon2id key
derivation) and back, streaming so files larger than RAM are handled in
bounded memory.`,
	SilenceUsage: true,
}

// Execute runs the root command; main() exits non-zero on the returned
// error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&levelFlag, "level", "moderate", "Argon2id cost profile: interactive|moderate|paranoid")
	rootCmd.PersistentFlags().BoolVar(&forceFlag, "force", false, "overwrite an existing output file")
	rootCmd.PersistentFlags().StringVar(&keyfileFlag, "keyfile", "", "path to a keyfile to mix with the password")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print byte-count progress while encrypting or decrypting")

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(batchEncryptCmd)
	rootCmd.AddCommand(batchDecryptCmd)
	rootCmd.AddCommand(generateKeyCmd)
}
