// Command trello is a command line client for the Trello REST API.
package main

func main() {
	Execute()
}
