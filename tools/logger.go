package tools

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang/glog"
)

var isEnabled = true
var printTimestamp = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func EnableLoggerTimestamp() {
	printTimestamp = true
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// Prints a progress message unless the logger is disabled. Messages always reach glog at verbosity 1.
func LogOutput(val ...interface{}) {
	glog.V(1).Infoln(val...)

	if !isEnabled {
		return
	}
	if printTimestamp {
		log.Println("[" + time.Now().Format("2006-01-02 15.04:05.000") + "] " + strings.TrimSuffix(fmt.Sprintln(val...), "\n"))
		return
	}
	log.Println(val...)
}
