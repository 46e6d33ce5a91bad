// This file contains the response body for the app version check.
package respond

// AppVersionRespond tells clients the latest version and whether their
// own version is still allowed to talk to this server. Versions are
// monotonically increasing build numbers.
type AppVersionRespond struct {
	Version              int    `json:"version"`
	LowestAllowedVersion int    `json:"lowest_allowed_version"`
	Message              string `json:"message"`
	DownloadURL          string `json:"download_url"`
}
