package main

import "github.com/pders01/formtree/cmd"

func main() {
	cmd.Execute()
}
