package version

var (
	Version   = "0.3.0"
	GitCommit = "dev"
	BuildDate = "20261019120000"
)

// String returns a human-readable version string.
func String() string {
	return "searchkit " + Version + " (" + GitCommit + ", " + BuildDate + ")"
}
