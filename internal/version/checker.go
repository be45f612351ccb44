package version

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

const VERSION_URL = "https://raw.githubusercontent.com/fruitjuice088/mousejump/main/internal/version/version.go"

const checkTimeout = 5 * time.Second

var versionPattern = regexp.MustCompile(`VERSION\s*=\s*"v(\d+\.\d+\.\d+)"`)

// CheckVersion fetches the published version from url. It reports whether
// the running build is current and, if not, the published version.
func CheckVersion(ctx context.Context, client *http.Client, url string) (bool, string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return true, "", err
	}
	res, err := client.Do(req)
	if err != nil {
		return true, "", fmt.Errorf("fetch version: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return true, "", fmt.Errorf("fetch version: unexpected status %s", res.Status)
	}
	bytes, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return true, "", fmt.Errorf("read version: %w", err)
	}

	newVersion := extractVersion(string(bytes))
	if newVersion == "" {
		return true, "", fmt.Errorf("no version found at %s", url)
	}
	if VERSION != newVersion {
		return false, newVersion, nil
	}

	return true, "", nil
}

func extractVersion(input string) string {
	matches := versionPattern.FindStringSubmatch(input)
	if len(matches) < 2 {
		return ""
	}
	return "v" + matches[1]
}
