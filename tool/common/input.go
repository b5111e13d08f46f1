package common

import (
	"github.com/gravitational/appconfig-tick/lib/constants"

	"gopkg.in/alecthomas/kingpin.v2"
)

// Format is the CLI parser for output format flag
func Format(s kingpin.Settings) *constants.Format {
	var f constants.Format
	s.SetValue(&f)
	return &f
}
