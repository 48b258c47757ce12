package main

import "scene-manager/cmd"

func main() {
	cmd.Execute()
}
