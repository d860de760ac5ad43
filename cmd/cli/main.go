package main

import (
	"fmt"
	"os"

	"github.com/micropost/micropost-go/cmd/cli/root"

	// Subcommand packages register themselves on the root command.
	_ "github.com/micropost/micropost-go/cmd/cli/auth"
	_ "github.com/micropost/micropost-go/cmd/cli/posts"
	_ "github.com/micropost/micropost-go/cmd/cli/users"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
