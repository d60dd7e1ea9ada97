package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version of the pcptrend tool
const Version = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pcptrend version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pcptrend v%s\n", Version)
	},
}
