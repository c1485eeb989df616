package main

import "github.com/brk3/flexhabits/cmd"

func main() {
	cmd.Execute()
}
