package badger

import "strings"

// treePrefix namespaces stored navigation trees.
const treePrefix = "navtree:"

func makeTreeKey(name string) []byte {
	return []byte(treePrefix + name)
}

func treeNameFromKey(key []byte) string {
	return strings.TrimPrefix(string(key), treePrefix)
}
