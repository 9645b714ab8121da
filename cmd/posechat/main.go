// Command posechat is the chat client and recommendation server.
package main

import "github.com/diogo/posechat/internal/commands"

func main() {
	commands.Execute()
}
