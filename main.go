package main

import "github.com/cowjuh/fs-utilities/cmd"

func main() {
	cmd.Execute()
}
