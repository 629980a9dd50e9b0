// Package version reports the version of this module as recorded in the build info of the running binary.
package version

import "runtime/debug"

// Default is returned when the version can't be determined, for example under "go run" or "go test".
const Default = "dev"

const modulePath = "github.com/wasmlower/wasmlower"

// GetVersion returns the version of this module, whether it is the main module or a dependency.
func GetVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Default
	}
	return versionOf(info)
}

func versionOf(info *debug.BuildInfo) string {
	if info.Main.Path == modulePath {
		return nonEmpty(info.Main.Version)
	}
	for _, dep := range info.Deps {
		if dep.Path != modulePath {
			continue
		}
		if dep.Replace != nil {
			return nonEmpty(dep.Replace.Version)
		}
		return nonEmpty(dep.Version)
	}
	return Default
}

func nonEmpty(v string) string {
	if v == "" || v == "(devel)" {
		return Default
	}
	return v
}
