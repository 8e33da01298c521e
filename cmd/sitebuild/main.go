package main

import "github.com/otherdev/site/cmd/sitebuild/cmd"

func main() {
	cmd.Execute()
}
