// Package version holds build information injected with ldflags:
//
//	-ldflags "-X github.com/ironsheep/cubeface/internal/version.Version=x.y.z"
package version

import (
	"fmt"
	"runtime"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the multi-line version report printed by "cubeface version".
func String() string {
	return fmt.Sprintf("cubeface %s\n  Build time: %s\n  Git commit: %s\n  Go: %s %s/%s",
		Version, BuildTime, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
