package redis

import "strings"

const (
	// DefaultNamespace prefixes every key written by hendshake.
	DefaultNamespace = "hendshake"
	// snapshotSuffix names the slot holding the entry collection.
	snapshotSuffix = "entries"
)

// SnapshotKey returns the Redis key for the entry snapshot in namespace.
// An empty namespace falls back to DefaultNamespace.
func SnapshotKey(namespace string) string {
	namespace = strings.Trim(strings.TrimSpace(namespace), ":")
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + ":" + snapshotSuffix
}
