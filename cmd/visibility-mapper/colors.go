package main

import (
	"fmt"

	"github.com/fatih/color"
)

type palette struct {
	header func(string, ...any) string
	good   func(string, ...any) string
	warn   func(string, ...any) string
	bad    func(string, ...any) string
	faint  func(string, ...any) string
}

func newPalette(colored bool) palette {
	if !colored {
		return palette{
			header: fmt.Sprintf,
			good:   fmt.Sprintf,
			warn:   fmt.Sprintf,
			bad:    fmt.Sprintf,
			faint:  fmt.Sprintf,
		}
	}

	return palette{
		header: color.New(color.Bold, color.FgCyan).SprintfFunc(),
		good:   color.GreenString,
		warn:   color.YellowString,
		bad:    color.RedString,
		faint:  color.New(color.Faint).SprintfFunc(),
	}
}
