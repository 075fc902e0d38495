package main

import "github.com/notargets/gocfdbc/cmd"

func main() {
	cmd.Execute()
}
