package main

import "atlan-sdk/cmd"

func main() {
	cmd.Execute()
}
