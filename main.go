package main

import "github.com/yumyai/protview/cmd"

func main() {
	cmd.Execute()
}
