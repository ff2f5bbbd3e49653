package main

import "github.com/kozaktomas/art-inventory/cmd"

func main() {
	cmd.Execute()
}
