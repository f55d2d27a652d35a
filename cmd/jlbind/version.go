package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the version string.
//
// Installed builds report the module version (e.g. "v0.1.0"). Development
// builds report "devel-0.1.0+abc1234", with the VCS revision when known.
func Version() string {
	return versionFrom(strings.TrimSpace(embeddedVersion), debug.ReadBuildInfo)
}

func versionFrom(base string, read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok {
		return base
	}

	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return "devel-" + base + "+" + s.Value[:7]
		}
	}
	return "devel-" + base
}
