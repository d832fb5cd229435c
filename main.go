package main

import "pdrill/cmd"

func main() {
	cmd.Execute()
}
