package main

import "github.com/Emansafdar26/buysmart-client/cmd"

func main() {
	cmd.Execute()
}
