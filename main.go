package main

import "github.com/molbal/cozyui-docs/cmd"

func main() {
	cmd.Execute()
}
