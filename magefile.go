//go:build mage
// +build mage

package main

import (
	//mage:import
	_ "github.com/gravitational/appconfig-tick/mage"
)
