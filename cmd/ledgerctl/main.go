package main

import "finledger/cmd/ledgerctl/command"

func main() {
	command.Execute()
}
