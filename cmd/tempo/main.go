package main

import "github.com/xvierd/tempo-cli/cmd"

func main() {
	cmd.Execute()
}
