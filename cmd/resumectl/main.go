package main

import "resume-builder/cmd/resumectl/cmd"

func main() {
	cmd.Execute()
}
