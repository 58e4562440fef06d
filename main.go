package main

import "librarydesk/command"

func main() {
	command.Execute()
}
