/*
Copyright 2026 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// LoggingPurpose selects the output setup of the standard logger
type LoggingPurpose int

const (
	// LoggingForCLI logs human-readable lines to stderr
	LoggingForCLI LoggingPurpose = iota
	// LoggingForFunction logs JSON lines to stdout where the function
	// runtime forwards them to CloudWatch Logs
	LoggingForFunction
)

// InitLogger configures the standard logger for the specified purpose and level
func InitLogger(purpose LoggingPurpose, level logrus.Level) {
	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.SetLevel(level)
	switch purpose {
	case LoggingForFunction:
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetOutput(os.Stdout)
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
		logrus.SetOutput(os.Stderr)
	}
}
