package utils

import (
	"strconv"

	"github.com/royalket/demo-file-merger/conf"
)

func GetEnvInt(varName string, defaultVal int) int {
	v := conf.GetEnv(varName)
	if v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultVal
}

func GetEnvString(varName string, defaultVal string) string {
	if v := conf.GetEnv(varName); v != "" {
		return v
	}
	return defaultVal
}
