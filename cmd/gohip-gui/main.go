package main

import "github.com/philipparndt/gohip/cmd"

func main() {
	cmd.Execute()
}
