package gitrepo

import (
	"os"
	"strconv"
	"strings"
)

// AutoCommitEnabled controls whether mutating commands commit the slot after
// saving. Default: off. Enable with NOTEPRESS_AUTOCOMMIT=1.
func AutoCommitEnabled() bool {
	v := strings.TrimSpace(os.Getenv("NOTEPRESS_AUTOCOMMIT"))
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	switch strings.ToLower(v) {
	case "y", "yes", "on":
		return true
	default:
		return false
	}
}
