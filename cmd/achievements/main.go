// Command achievements is the achievements log CLI and HTTP server.
package main

import "github.com/mesh-intelligence/achievements/internal/cli"

func main() {
	cli.Execute()
}
