package main

import "github.com/Mostafalol1233/resturant/cmd/pos/commands"

func main() {
	commands.Execute()
}
