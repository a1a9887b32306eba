// Package corpus loads the historical query corpus the suggester is fitted
// from: a startup-time file download plus line-by-line frequency
// aggregation of normalized queries.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/screengreen/suggestive-service/internal/utils"
)

// yandexAPI resolves a public share URL into a direct download link.
const yandexAPI = "https://cloud-api.yandex.net/v1/disk/public/resources/download?"

var client = &http.Client{Timeout: 5 * time.Minute}

// Download fetches the corpus file behind a Yandex Disk public URL and
// writes it to outputPath. An existing file is kept as-is, so restarts skip
// the network round trip. Retry policy belongs to the caller.
func Download(publicURL, outputPath string) error {
	if utils.FileExists(outputPath) {
		log.Debugf("Corpus file %s already exists, skipping download", outputPath)
		return nil
	}

	href, err := resolveDownloadURL(publicURL)
	if err != nil {
		return fmt.Errorf("resolve corpus download link: %w", err)
	}

	resp, err := client.Get(href)
	if err != nil {
		return fmt.Errorf("download corpus: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download corpus: unexpected status %s", resp.Status)
	}

	if err := utils.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return fmt.Errorf("create corpus dir: %w", err)
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("write corpus file: %w", err)
	}
	log.Debugf("Downloaded corpus: %d bytes to %s", written, outputPath)
	return nil
}

// resolveDownloadURL asks the cloud API for the direct href of a public
// resource.
func resolveDownloadURL(publicURL string) (string, error) {
	params := url.Values{}
	params.Set("public_key", publicURL)

	resp, err := client.Get(yandexAPI + params.Encode())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload struct {
		Href string `json:"href"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Href == "" {
		return "", fmt.Errorf("no download href in API response")
	}
	return payload.Href, nil
}
