package main

import "github.com/notargets/cubedsphere/cmd"

func main() {
	cmd.Execute()
}
