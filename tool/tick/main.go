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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gravitational/appconfig-tick/lib/constants"
	"github.com/gravitational/appconfig-tick/lib/tick"
	"github.com/gravitational/appconfig-tick/lib/utils"
	"github.com/gravitational/appconfig-tick/tool/common"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	utils.InitLogger(utils.LoggingForFunction, log.InfoLevel)
	app := kingpin.New("tick", "AppConfig deployment tick extension function.")
	if err := run(app); err != nil {
		log.WithError(err).Error("Command failed.")
		common.PrintError(err)
		os.Exit(255)
	}
}

func run(app *kingpin.Application) error {
	debug := app.Flag("debug", "Enable debug logging.").Envar("TICK_DEBUG").Bool()
	queueURL := app.Flag("queue-url", "URL of the notification queue.").Envar(constants.EnvQueueURL).Required().String()
	region := app.Flag("region", "AWS region of the queue.").Envar(constants.EnvRegion).String()
	once := app.Flag("once", "Handle a single tick locally and print the directive instead of starting the function runtime.").Bool()
	if _, err := app.Parse(os.Args[1:]); err != nil {
		return trace.Wrap(err)
	}
	trace.SetDebug(*debug)
	if *debug {
		utils.InitLogger(utils.LoggingForFunction, log.DebugLevel)
	}

	handler, err := tick.New(tick.Config{
		QueueURL: *queueURL,
		Region:   *region,
	})
	if err != nil {
		return trace.Wrap(err)
	}
	if *once {
		resp, err := handler.Handle(context.Background(), nil)
		if err != nil {
			return trace.Wrap(err)
		}
		out, err := json.Marshal(resp)
		if err != nil {
			return trace.Wrap(err)
		}
		fmt.Println(string(out))
		return nil
	}
	if err := checkRuntime(); err != nil {
		return trace.Wrap(err)
	}
	lambda.Start(handler.Handle)
	return nil
}

// checkRuntime makes sure the process was started by the function runtime
func checkRuntime() error {
	if os.Getenv(constants.EnvLambdaRuntimeAPI) == "" {
		return trace.BadParameter("%v is not set, run with --once outside of the function runtime",
			constants.EnvLambdaRuntimeAPI)
	}
	return nil
}
