package commands

import (
	"github.com/spf13/cobra"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/protocol"
)

// VerifyCmd checks an object's signature and witness co-signatures.
var VerifyCmd = &cobra.Command{
	Use:   "verify <signed.json>",
	Short: "Verify an object's signature and witnesses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := loadObject(args[0])
		if err != nil {
			return err
		}
		opts := hashOpts(cmd)

		if !protocol.VerifySig(o, nil, opts) {
			return errors.InvalidInputf("signature does not verify")
		}
		if !protocol.VerifyWitnesses(o, nil, opts) {
			return errors.InvalidInputf("witness signatures do not verify")
		}

		pub, err := protocol.SigPubKey(o)
		if err != nil {
			return err
		}
		cmd.Printf("ok: signed by %x\n", pub.Pub)
		return nil
	},
}
