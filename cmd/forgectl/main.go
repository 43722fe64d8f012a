// forgectl — command-line client for the UEAgentForge editor plugin.
package main

import "github.com/ueagentforge/forge/internal/cli"

func main() {
	cli.Execute()
}
