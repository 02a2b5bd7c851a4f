// Command songctl manages a song catalog server from the command line.
package main

func main() {
	Execute()
}
