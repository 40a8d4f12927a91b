package main

import "staff-forge.com/staff-forge/cmd"

func main() {
	cmd.Execute()
}
