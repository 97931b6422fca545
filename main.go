package main

import "github.com/icco/cinevault/cmd"

func main() {
	cmd.Execute()
}
