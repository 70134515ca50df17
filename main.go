package main

import "railsearch/cmd"

func main() {
	cmd.Execute()
}
