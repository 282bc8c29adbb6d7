//go:build windows

package main

import "golang.org/x/sys/windows"

var procFreeConsole = windows.NewLazySystemDLL("kernel32.dll").NewProc("FreeConsole")

// manageConsole detaches the window from the console it was started with,
// unless debugging, so no console lingers behind the browser.
func manageConsole(debug bool) {
	if debug {
		return
	}
	procFreeConsole.Call()
}
