package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

const (
	updateURL = "https://api.github.com/repos/devusSs/court-kraken/releases/latest"
)

// Set via -ldflags at build time.
var (
	buildVersion = "v0.0.0-dev"
	buildDate    = ""
	buildOS      = runtime.GOOS
	buildArch    = runtime.GOARCH
	goVersion    = runtime.Version()
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

type githubRelease struct {
	TagName string `json:"tag_name"`
	Body    string `json:"body"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// Release is the newest published build matching this platform.
type Release struct {
	URL       string
	Version   string
	Changelog string
}

func Version() string {
	return buildVersion
}

// Function to print build information without log.
func PrintBuildInformationRaw() {
	fmt.Printf("Build version: \t\t%s\n", buildVersion)
	fmt.Printf("Build date: \t\t%s\n", buildDate)
	fmt.Printf("Build OS: \t\t%s\n", buildOS)
	fmt.Printf("Build arch: \t\t%s\n", buildArch)
	fmt.Printf("Go version: \t\t%s\n", goVersion)
}

// Queries the latest release from Github repo.
func FindLatestRelease() (Release, error) {
	resp, err := httpClient.Get(updateURL)
	if err != nil {
		return Release{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("querying releases: unexpected status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Release{}, err
	}

	return matchRelease(release, buildOS, buildArch)
}

// Picks the asset built for goos/goarch and formats the changelog.
func matchRelease(release githubRelease, goos, goarch string) (Release, error) {
	// Release assets use the goreleaser architecture names.
	switch goarch {
	case "amd64":
		goarch = "x86_64"
	case "386":
		goarch = "i386"
	}

	for _, asset := range release.Assets {
		name := strings.ToLower(asset.Name)
		if !strings.Contains(name, goarch) || !strings.Contains(name, goos) {
			continue
		}

		changeSplit := strings.Split(strings.ReplaceAll(strings.TrimSpace(release.Body), "## Changelog", ""), "\n")
		for i, line := range changeSplit {
			changeSplit[i] = strings.ReplaceAll(fmt.Sprintf("\t\t\t%s", line), "*", "-")
		}

		return Release{
			URL:       asset.BrowserDownloadURL,
			Version:   release.TagName,
			Changelog: strings.Join(changeSplit, "\n"),
		}, nil
	}

	return Release{}, errors.New("no matching release found")
}

// Compare current version with latest version.
func NewerVersionAvailable(newVersion string) (bool, error) {
	vOld, err := semver.NewVersion(buildVersion)
	if err != nil {
		return false, fmt.Errorf("parsing build version: %w", err)
	}

	vNew, err := semver.NewVersion(newVersion)
	if err != nil {
		return false, fmt.Errorf("parsing release version: %w", err)
	}

	return vNew.GreaterThan(vOld), nil
}

// Perform the actual patch.
func DoUpdate(url string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	return selfupdate.UpdateTo(url, exe)
}

// Returns the newer version if one has been released, an empty string otherwise.
func PeriodicUpdateCheck() (string, error) {
	release, err := FindLatestRelease()
	if err != nil {
		return "", err
	}

	newer, err := NewerVersionAvailable(release.Version)
	if err != nil {
		return "", err
	}

	if newer {
		return release.Version, nil
	}

	return "", nil
}
