// backend/pipeline/downloader.go
package pipeline

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/madruiz/pm9data/backend/config"
)

// DownloadFile downloads a file from a URL and saves it to a local path.
func DownloadFile(url string, localSavePath string) error {
	log.Printf("Downloader: fetching %s to %s\n", url, localSavePath)

	client := http.Client{
		Timeout: 60 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download file from %s: received status code %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(localSavePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", localSavePath, err)
	}

	outFile, err := os.Create(localSavePath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localSavePath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to copy downloaded content to %s: %w", localSavePath, err)
	}

	log.Printf("Downloader: saved %s\n", localSavePath)
	return nil
}

// DownloadSourceXLSX fetches the raw grant workbook from the configured
// URL and stores it at the configured source path, overwriting any earlier
// copy. Returns the local path it wrote. Callers should only invoke this
// when a source URL is actually configured; most deployments run the
// pipeline against a workbook dropped in by hand.
func DownloadSourceXLSX() (string, error) {
	url := config.AppConfig.Pipeline.SourceURL
	localPath := config.AppConfig.Paths.SourceXLSX

	if url == "" {
		return "", fmt.Errorf("source workbook URL is not configured")
	}
	if localPath == "" {
		return "", fmt.Errorf("local save path for source workbook is not configured")
	}

	if err := DownloadFile(url, localPath); err != nil {
		return "", fmt.Errorf("failed to download source workbook: %w", err)
	}
	return localPath, nil
}
