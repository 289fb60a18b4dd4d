package internal

import "os"

// localeEnv lists the variables consulted for the display currency, most specific first
var localeEnv = []string{"LC_MONETARY", "LC_ALL", "LANG"}

// detectSystemLocale returns the first usable locale from the environment, or "".
func detectSystemLocale() string {
	for _, envVar := range localeEnv {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" && locale != "C.UTF-8" {
			return locale
		}
	}
	return ""
}
