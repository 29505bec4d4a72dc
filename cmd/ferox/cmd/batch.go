package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Freedom18946/ferox-encryptor"
)

var batchEncryptCmd = &cobra.Command{
	Use:   "batch-encrypt <root>",
	Short: "Encrypt every selected file under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch(ferox.BatchEncrypt),
}

var batchDecryptCmd = &cobra.Command{
	Use:   "batch-decrypt <root>",
	Short: "Decrypt every selected .feroxcrypt container under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch(ferox.BatchDecrypt),
}

func init() {
	for _, c := range []*cobra.Command{batchEncryptCmd, batchDecryptCmd} {
		c.Flags().BoolVar(&recursiveFlag, "recursive", false, "recurse into subdirectories")
		c.Flags().StringArrayVar(&includeFlag, "include", nil, "glob a file's basename must match (repeatable)")
		c.Flags().StringArrayVar(&excludeFlag, "exclude", nil, "glob that excludes a file (repeatable, wins over include)")
		c.Flags().IntVar(&workersFlag, "workers", runtime.NumCPU(), "number of files to process concurrently")
		c.Flags().BoolVar(&dryRunFlag, "dry-run", false, "report what would be processed without writing anything")
	}
}

func runBatch(op ferox.BatchOperation) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
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

		report, err := ferox.RunBatch(ferox.BatchRequest{
			Root:           args[0],
			Recursive:      recursiveFlag,
			Includes:       includeFlag,
			Excludes:       excludeFlag,
			Operation:      op,
			Password:       password,
			Level:          level,
			Keyfile:        keyfileFlag,
			ForceOverwrite: forceFlag,
			Workers:        workersFlag,
			DryRun:         dryRunFlag,
			NewGuard:       signalGuard.New,
			ReleaseGuard:   signalGuard.Release,
		})
		if err != nil {
			return err
		}

		fmt.Printf("processed=%d succeeded=%d failed=%d skipped=%d bytes=%d duration=%s\n",
			report.Processed, report.Succeeded, report.Failed, report.Skipped, report.BytesProcessed, report.Duration)
		for _, f := range report.Failures {
			fmt.Printf("  FAILED %s: %s\n", f.Path, f.Reason)
		}

		if report.Failed > 0 {
			return fmt.Errorf("%d file(s) failed", report.Failed)
		}
		return nil
	}
}
