package main

import "github.com/prasetyarht/timesheet-management/cmd"

func main() {
	cmd.Execute()
}
