package logger

import (
	"fmt"
	"log"
	"os"
)

var (
	InfoLogger  = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger  = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// callDepth makes Lshortfile report the caller of Info/Warn/Error.
const callDepth = 2

func Info(msg string, v ...interface{}) {
	_ = InfoLogger.Output(callDepth, fmt.Sprintf(msg, v...))
}

func Warn(msg string, v ...interface{}) {
	_ = WarnLogger.Output(callDepth, fmt.Sprintf(msg, v...))
}

// Error logs msg with err appended. A nil err logs msg alone.
func Error(msg string, err error, v ...interface{}) {
	if err != nil {
		msg += ": %v"
		v = append(v, err)
	}
	_ = ErrorLogger.Output(callDepth, fmt.Sprintf(msg, v...))
}
