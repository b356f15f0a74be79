package main

import "github.com/csln-go/csln/cmd"

func main() {
	cmd.Execute()
}
