package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent is the default User-Agent string used for HTTP requests.
	// It identifies this tool to the catalog and cover art services it queries.
	DefaultUserAgent = "tempo-importer/1.0 (+https://github.com/tempo-importer/tempo-importer)"

	// DefaultMaxLogLength is the default maximum size (in bytes) for a single
	// dumped request/response body in debug logs.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB
)
