package main

import "github.com/stargirl99/Cable/cmd"

func main() {
	cmd.Execute()
}
