package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "micropost",
	Short: "Micropost CLI",
	Long:  "Command line interface for interacting with the Micropost API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command for subpackages to attach to.
func GetRoot() *cobra.Command {
	return RootCmd
}
