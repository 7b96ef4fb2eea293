package commands

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/tradle/protocol/seal"
)

// KeygenCmd generates a fresh secp256k1 key pair.
var KeygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a signing key pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		priv, err := seal.GenerateKey()
		if err != nil {
			return err
		}
		pub := seal.ExportPublicKey(priv.PubKey())

		cmd.Printf("private: %s\n", hex.EncodeToString(priv.Serialize()))
		cmd.Printf("public:  %s\n", hex.EncodeToString(pub.Pub))
		cmd.Printf("address: %s\n", seal.Address(pub))
		return nil
	},
}
