package main

import "github.com/folioworks/folio/cmd"

func main() {
	cmd.Execute()
}
