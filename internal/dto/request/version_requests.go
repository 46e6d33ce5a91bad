// This file contains the request body for publishing an app version.
package request

// PublishVersionRequest publishes a client version. Publishing an
// already known version number rewrites that row.
type PublishVersionRequest struct {
	Version              int    `json:"version" binding:"required,gt=0"`
	LowestAllowedVersion int    `json:"lowest_allowed_version" binding:"min=0"`
	Message              string `json:"message" binding:"required,max=700"`
	DownloadURL          string `json:"download_url" binding:"required,max=700"`
}
