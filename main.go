package main

import "github.com/jcdickinson/clrdoc/cmd"

func main() {
	cmd.Execute()
}
