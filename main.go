package main

import "bizportal/cmd"

func main() {
	cmd.Execute()
}
