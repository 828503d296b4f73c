package main

import "github.com/mibeco/q-history-mcp-server/cmd"

func main() {
	cmd.Execute()
}
