package commands

import (
	"github.com/spf13/cobra"

	"github.com/tradle/protocol/version"
)

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		info := version.Get()
		if jsonOutput {
			if err := printJSON(cmd, info); err != nil {
				cmd.PrintErrf("Error formatting JSON: %v\n", err)
			}
			return
		}
		cmd.Println(info.String())
		cmd.Printf("Platform: %s\n", info.Platform)
		cmd.Printf("Go: %s\n", info.GoVersion)
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}
