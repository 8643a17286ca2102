package main

import "closeouts/cmd/client/cmd"

func main() {
	cmd.Execute()
}
