package main

import "copycolors/cmd"

func main() {
	cmd.Execute()
}
