package main

import "github.com/jamezp/wildfly-plugin-tools/cmd"

// Build metadata, set during release builds with -ldflags.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cmd.SetVersion(version)
	cmd.SetBuildInfo(commit, date)
	cmd.Execute()
}
