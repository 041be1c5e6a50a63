/*
Copyright © 2026 Paulo Suderio
*/
package main

import "github.com/suderio/bloodline/cmd"

func main() {
	cmd.Execute()
}
