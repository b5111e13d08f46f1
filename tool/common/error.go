package common

import (
	"strings"

	"github.com/gravitational/appconfig-tick/lib/constants"

	"github.com/gravitational/trace"
)

// ProcessRunError looks at the error that happened during a CLI command
// execution and converts it to a user-friendly format
func ProcessRunError(runErr error) error {
	if runErr == nil {
		return nil
	}
	message := trace.UserMessage(runErr)
	if strings.Contains(message, "required flag --queue-url not provided") {
		return trace.BadParameter("%v, pass the notification queue URL with "+
			"--queue-url or set %v", message, constants.EnvQueueURL)
	}
	return runErr
}

// ProcessQueueError adds a hint to the errors returned by the
// notification queue
func ProcessQueueError(err error, queueURL string) error {
	switch {
	case trace.IsNotFound(err):
		return trace.Wrap(err, "make sure %v exists in the selected region", queueURL)
	case trace.IsAccessDenied(err):
		return trace.Wrap(err, "make sure the caller has the policy from the %q stack "+
			"output attached, 'tickctl policy' prints an equivalent document", constants.OutputPolicy)
	}
	return err
}
