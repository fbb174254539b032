// Command wireframe edits widget-tree projects and generates Flet code.
package main

func main() {
	Execute()
}
