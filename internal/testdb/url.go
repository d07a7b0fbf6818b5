package testdb

import (
	"net/url"
	"os"
)

// urlEnvVars are checked in order by DatabaseURL.
var urlEnvVars = []string{"SCRY_TEST_DB_URL", "DATABASE_URL", "SCRY_DATABASE_URL"}

// DatabaseURL returns the first configured Postgres test URL, or "".
func DatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a Postgres test URL is set.
func IsIntegrationTestEnvironment() bool {
	return DatabaseURL() != ""
}

// MaskDatabaseURL hides the password in dbURL for logging.
func MaskDatabaseURL(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil || u.User == nil {
		return dbURL
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
