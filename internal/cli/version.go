package cli

// Program identity printed by --version and in the usage banner.
const (
	Name        = "vomix"
	Version     = "1.0.0"
	Description = "vomix is a tool for viral metagenomics analysis."
)

// Banner returns the one-line program description.
func Banner() string {
	return Name + " v" + Version + ": " + Description
}
