package services

import (
	"regexp"
	"strings"
)

// ResourcePackTarget is the container object that never carries materials.
const ResourcePackTarget = "RMB Resource Pack"

var meshIDPattern = regexp.MustCompile(`DaggerfallMesh \[ID=(\d+)\]`)

// CleanTargetName reduces a scene object name to the document name it is
// authored under.
func CleanTargetName(name string) string {
	name = strings.ReplaceAll(name, "(Clone)", "")
	name = strings.ReplaceAll(name, ".prefab", "")
	name = strings.TrimSpace(name)
	if m := meshIDPattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

// IsResourcePackTarget reports whether a target should be skipped entirely.
func IsResourcePackTarget(name string) bool {
	return strings.TrimSpace(name) == ResourcePackTarget
}
