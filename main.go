package main

import "github.com/epicevents/crm-management/cmd"

func main() {
	cmd.Execute()
}
