package cmd

import (
	"flag"
	"strconv"

	"github.com/golang/glog"
)

// initLogging configures glog, which is only controllable through the
// standard flag set. The command line itself is parsed by cobra.
func initLogging(logToStderr bool, verbose int) {
	if !flag.Parsed() {
		_ = flag.CommandLine.Parse(nil)
	}
	if logToStderr {
		_ = flag.Lookup("logtostderr").Value.Set("true")
	}
	if verbose > 0 {
		_ = flag.Lookup("v").Value.Set(strconv.Itoa(verbose))
	}
	glog.V(3).Infof("logging initialized with verbosity %d", verbose)
}
