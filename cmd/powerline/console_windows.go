//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

const codePageUTF8 = 65001

var setConsoleOutputCP = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetConsoleOutputCP")

// initConsole switches the console to UTF-8 and turns on ANSI escape
// handling. Hosts that already prepared the console set
// POWERLINE_CONSOLE_READY and are left alone.
func initConsole() {
	if os.Getenv("POWERLINE_CONSOLE_READY") != "" {
		return
	}
	setConsoleOutputCP.Call(codePageUTF8)

	h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil || h == 0 {
		return
	}
	var mode uint32
	if windows.GetConsoleMode(h, &mode) != nil {
		return
	}
	_ = windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
}
