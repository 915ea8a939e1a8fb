package main

import "github.com/BruksfildServices01/staff-manager/cmd/empctl/commands"

func main() {
	commands.Execute()
}
