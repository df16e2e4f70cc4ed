package main

import "contribcal/cmd/contribcal-cli/commands"

func main() {
	commands.Execute()
}
