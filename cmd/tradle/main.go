package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tradle/protocol/cmd/tradle/commands"
	"github.com/tradle/protocol/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tradle",
	Short: "tradle - object signing and provenance toolkit",
	Long: `tradle - create, sign and verify provenance-chained objects.

Objects are canonicalized deterministically, hashed into a merkle tree,
and signed with secp256k1. Signed objects link to their previous
versions by header hash, forming a verifiable version chain.

Available commands:
  hash    - Compute an object's merkle root and link
  keygen  - Generate a signing key pair
  sign    - Sign an object
  verify  - Verify an object's signature and witnesses
  version - Show version information

Examples:
  tradle keygen                     # Generate a key pair
  tradle hash object.json           # Print merkle root and link
  tradle sign object.json -k <hex>  # Sign with a private key
  tradle verify signed.json         # Check signature and witnesses`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().Bool("blake3", false, "Use the blake3 hash suite instead of sha256")

	rootCmd.AddCommand(commands.HashCmd)
	rootCmd.AddCommand(commands.KeygenCmd)
	rootCmd.AddCommand(commands.SignCmd)
	rootCmd.AddCommand(commands.VerifyCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
