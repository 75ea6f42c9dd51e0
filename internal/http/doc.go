// Package http provides the small HTTP client the pipeline uses for
// retrieving cover art images.
//
//	client := http.NewClient(60 * time.Second)
//	data, err := client.DownloadBytes(ctx, coverURL)
//
// Every request carries the project's User-Agent and the configured
// timeout; non-200 responses are errors.
package http
