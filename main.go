package main

import "github.com/ismaelescalante7/challenge-leverbox/cmd"

func main() {
	cmd.Execute()
}
