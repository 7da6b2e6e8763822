package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for regular files: (rw-r--r--).
	// Owner: read and write;
	// Group: read;
	// Others: read.
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the default permissions for regular folders: (rwxr-xr-x).
	// Owner: read, write, and execute;
	// Group: read and execute;
	// Others: read and execute.
	DefaultFolderPermissions os.FileMode = 0o755
)

// Audio file extension constants, keyed by the on-disk tag format they carry.
const (
	ExtensionFLAC = ".flac"
	ExtensionMP3  = ".mp3"
	ExtensionMP4  = ".m4a"
	ExtensionAPE  = ".ape"
)

// Image file extension constants for rendered cover art.
const (
	ExtensionJPEG = ".jpg"
	ExtensionPNG  = ".png"
)
