package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/tradle/protocol/errors"
	"github.com/tradle/protocol/merkle"
	"github.com/tradle/protocol/object"
)

// hashOpts resolves the hash suite from the persistent --blake3 flag.
func hashOpts(cmd *cobra.Command) merkle.Opts {
	if blake3, _ := cmd.Flags().GetBool("blake3"); blake3 {
		return merkle.Blake3Opts()
	}
	return merkle.SHA256Opts()
}

// loadObject reads a JSON object from a file.
func loadObject(path string) (object.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var o object.Object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return o, nil
}

// printJSON writes an object as indented JSON to stdout.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
