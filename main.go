package main

import "github.com/KostasZigo/gitlet/cmd"

func main() {
	cmd.Execute()
}
