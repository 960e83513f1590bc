package main

import "github.com/mrsante/records-management/cmd"

func main() {
	cmd.Execute()
}
