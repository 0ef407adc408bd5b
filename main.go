package main

import "github.com/coddhisatva/Synthaia-public-version/cmd"

func main() {
	cmd.Execute()
}
