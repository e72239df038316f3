package main

import "github.com/VasenkovAA/codingutils/cmd"

func main() {
	cmd.Execute()
}
