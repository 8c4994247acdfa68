// Command copilotdesk runs the support inbox with its AI copilot.
package main

import "github.com/diogo/copilotdesk/internal/commands"

func main() {
	commands.Execute()
}
