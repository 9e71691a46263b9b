// Command dialsim runs the dial calibration widget in a window, in a
// terminal, or headlessly from a gesture script.
package main

func main() {
	Execute()
}
