package log

import (
	"os"
	"path/filepath"

	"github.com/royalket/demo-file-merger/conf"
	"github.com/sirupsen/logrus"
)

var (
	API      logrus.FieldLogger
	Pipeline logrus.FieldLogger
)

func init() {
	API = Logger(logrus.New(), conf.GetEnv("MERGER_API_LOG"),
		"api", conf.GetEnv("ENVIRONMENT"))
	Pipeline = Logger(logrus.New(), conf.GetEnv("MERGER_PIPELINE_LOG"),
		"pipeline", conf.GetEnv("ENVIRONMENT"))
}

func Logger(logger *logrus.Logger, outputFile string,
	application, environment string) logrus.FieldLogger {

	if outputFile != "" {
		if file, err := os.OpenFile(filepath.Clean(outputFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640); err == nil {
			logger.SetOutput(file)
		} else {
			logger.Infof("Failed to open output file %s. Will use stderr. %s",
				outputFile, err.Error())
		}
	}

	return logger.WithFields(logrus.Fields{
		"application": application,
		"environment": environment})
}
