package version

import (
	"fmt"
	"runtime"

	"github.com/aatumaykin/benchkit/internal/constants"
)

var (
	Version   = constants.DefaultVersion
	BuildTime = constants.DefaultBuildTime
	GitCommit = constants.DefaultGitCommit
	GoVersion = constants.DefaultGoVersion
)

func SetInfo(v, bt, gc, gv string) {
	if v != "" {
		Version = v
	}
	if bt != "" {
		BuildTime = bt
	}
	if gc != "" {
		GitCommit = gc
	}
	if gv != "" {
		GoVersion = gv
	}
}

// Banner is the one-line header printed above a benchmark report.
func Banner() string {
	return fmt.Sprintf("benchkit %s (%s, %s/%s, GOMAXPROCS=%d)",
		Version, goVersion(), runtime.GOOS, runtime.GOARCH, runtime.GOMAXPROCS(0))
}

// String returns the full build information.
func String() string {
	return fmt.Sprintf("benchkit %s\nbuild time: %s\ngit commit: %s\ngo version: %s",
		Version, BuildTime, GitCommit, goVersion())
}

func goVersion() string {
	if GoVersion == constants.DefaultGoVersion {
		return runtime.Version()
	}
	return GoVersion
}
