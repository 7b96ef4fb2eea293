package commands

import (
	"github.com/spf13/cobra"

	"github.com/tradle/protocol/protocol"
)

// HashCmd computes an object's merkle root, and its link when signed.
var HashCmd = &cobra.Command{
	Use:   "hash <object.json>",
	Short: "Compute an object's merkle root and link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := loadObject(args[0])
		if err != nil {
			return err
		}
		opts := hashOpts(cmd)

		root, err := protocol.MerkleRoot(o, opts)
		if err != nil {
			return err
		}
		cmd.Printf("root: %s\n", protocol.LinkString(root))

		if o.IsSigned() {
			link, err := protocol.Link(o, opts)
			if err != nil {
				return err
			}
			cmd.Printf("link: %s\n", protocol.LinkString(link))
		}
		return nil
	},
}
