/*
CLI for the imp interpreter
*/
package main

import (
	"imp/interpreter-go/cmd/imp/commands"
)

func main() {
	commands.Execute()
}
