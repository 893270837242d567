package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Read-only GraphQL surface stays public; everything under /api is authed
	return []string{"/graphql"}
}
