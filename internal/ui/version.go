package ui

// VersionInfo holds build information for display in the dashboard header
type VersionInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Tagline   string
	Version   string
}

var versionInfo = VersionInfo{
	Tagline: "Unscroll - win your attention back",
	Version: "dev",
}

// SetVersionInfo sets the build information shown in the header
func SetVersionInfo(info VersionInfo) {
	versionInfo = info
}
