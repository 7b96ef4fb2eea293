package commands

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/spf13/cobra"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/protocol"
	"github.com/tradle/protocol/seal"
)

// SignCmd signs an object with a hex-encoded private key and prints the
// signed object.
var SignCmd = &cobra.Command{
	Use:   "sign <object.json>",
	Short: "Sign an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyHex, _ := cmd.Flags().GetString("key")
		if keyHex == "" {
			return errors.InvalidInputf("missing --key")
		}
		keyBytes, err := hex.DecodeString(keyHex)
		if err != nil {
			return errors.InvalidInputf("private key is not hex: %v", err)
		}
		priv := secp256k1.PrivKeyFromBytes(keyBytes)

		o, err := loadObject(args[0])
		if err != nil {
			return err
		}
		signed, err := protocol.Sign(protocol.SignOpts{
			Object: o,
			PubKey: seal.ExportPublicKey(priv.PubKey()),
			Sign: func(digest []byte) ([]byte, error) {
				return seal.Sign(priv, digest)
			},
			Merkle: hashOpts(cmd),
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, signed)
	},
}

func init() {
	SignCmd.Flags().StringP("key", "k", "", "Hex-encoded secp256k1 private key")
}
