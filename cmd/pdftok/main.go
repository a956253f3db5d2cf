package main

import "pdftok/cmd/pdftok/cmd"

func main() {
	cmd.Execute()
}
