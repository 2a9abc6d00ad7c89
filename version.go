package jdx

import "fmt"

// BuildStage is the release stage stamped into a version.
type BuildStage uint8

const (
	BuildDev BuildStage = iota
	BuildAlpha
	BuildBeta
	BuildRC
	BuildRelease
)

func (s BuildStage) String() string {
	switch s {
	case BuildDev:
		return "dev"
	case BuildAlpha:
		return "alpha"
	case BuildBeta:
		return "beta"
	case BuildRC:
		return "rc"
	case BuildRelease:
		return "release"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// Version is the opaque version stamp carried by every header.
//
// It is informational only: the codec never branches on it.
type Version struct {
	BuildStage BuildStage
	Patch      uint8
	Minor      uint8
	Major      uint8
}

// Library version components. Headers created by NewHeader carry them.
const (
	VersionMajor uint8      = 0
	VersionMinor uint8      = 4
	VersionPatch uint8      = 0
	VersionStage BuildStage = BuildDev
)

// LibraryVersion returns the version stamp of this library build.
func LibraryVersion() Version {
	return Version{
		BuildStage: VersionStage,
		Patch:      VersionPatch,
		Minor:      VersionMinor,
		Major:      VersionMajor,
	}
}

// String formats the version as major.minor.patch with a stage suffix for
// anything that is not a release build.
func (v Version) String() string {
	if v.BuildStage == BuildRelease {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d.%d-%s", v.Major, v.Minor, v.Patch, v.BuildStage)
}
