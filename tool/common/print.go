package common

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gravitational/appconfig-tick/lib/constants"

	"github.com/fatih/color"
	"github.com/ghodss/yaml"
	"github.com/gravitational/trace"
)

// PrintError prints the red error message to the console
func PrintError(err error) {
	color.Red("[ERROR]: %v\n", trace.UserMessage(err))
}

// PrintValue writes value to w in the specified format.
// text is the representation used for the text format.
func PrintValue(w io.Writer, format constants.Format, value interface{}, text string) error {
	switch format {
	case constants.EncodingJSON:
		bytes, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return trace.Wrap(err)
		}
		_, err = fmt.Fprintln(w, string(bytes))
		return trace.Wrap(err)
	case constants.EncodingYAML:
		bytes, err := yaml.Marshal(value)
		if err != nil {
			return trace.Wrap(err)
		}
		_, err = w.Write(bytes)
		return trace.Wrap(err)
	case constants.EncodingText, "":
		_, err := fmt.Fprintln(w, text)
		return trace.Wrap(err)
	}
	return trace.BadParameter("unsupported output format %q, supported are: %v",
		format, constants.OutputFormats)
}
