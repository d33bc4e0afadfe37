package main

import "github.com/Daskott/contactbook/cmd"

func main() {
	cmd.Execute()
}
