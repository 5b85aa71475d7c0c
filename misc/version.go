// Package misc keeps build related information.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// set with -ldflags at build time
var (
	version = "dev"
	githash = ""
)

// GetAppName returns name of the running executable without extension.
func GetAppName() string {
	name := filepath.Base(os.Args[0])
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if len(name) == 0 {
		return "imgrule"
	}
	return name
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git revision the program was built from. When hash was
// not provided at link time VCS information embedded by the toolchain is
// used.
func GetGitHash() string {
	if len(githash) > 0 {
		return githash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
