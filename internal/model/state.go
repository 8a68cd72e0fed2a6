package model

// InstallState represents the local availability of a runtime version
type InstallState string

const (
	// StateUnknown means the version has not been downloaded
	StateUnknown InstallState = "unknown"

	// StateDownloading means a download for the version is in progress
	StateDownloading InstallState = "downloading"

	// StateReady means the version is downloaded and runnable
	StateReady InstallState = "ready"
)

// String returns the string representation of InstallState
func (s InstallState) String() string {
	return string(s)
}

// IsReady returns true if the version can be executed locally
func (s InstallState) IsReady() bool {
	return s == StateReady
}

// IsActive returns true if a download for the version is in flight
func (s InstallState) IsActive() bool {
	return s == StateDownloading
}
