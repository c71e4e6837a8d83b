package main

import "beach-review/commands"

func main() {
	commands.Execute()
}
