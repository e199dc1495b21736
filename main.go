package main

import "github.com/maxvaer/paramfuzz/cmd"

func main() {
	cmd.Execute()
}
