package main

import "github.com/alokemajumder/privacyhub-sub000/cmd"

func main() {
	cmd.Execute()
}
