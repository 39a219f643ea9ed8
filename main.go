package main

import "eduxctl/cmd"

func main() {
	cmd.Execute()
}
