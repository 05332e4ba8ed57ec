package main

import "github.com/novatitan/cloudwarden/cmd"

func main() {
	cmd.Execute()
}
