// Command memctl exercises the memkit allocator and tree.
package main

func main() {
	execute()
}
