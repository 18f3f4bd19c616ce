package main

import "github.com/shanedonnelly/devops/cmd"

func main() {
	cmd.Init()
}
