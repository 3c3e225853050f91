package config

import "os"

func IsDebug() bool {
	return os.Getenv("SORCERER_DEBUG") == "1"
}
