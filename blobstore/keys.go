package blobstore

import "strings"

// Keyspace maps blob names to object keys below a root prefix, so several
// runs can publish into one bucket.
type Keyspace struct {
	root string
}

// NewKeyspace returns the keyspace below root. Leading and trailing slashes
// are ignored; an empty root maps names to themselves.
func NewKeyspace(root string) Keyspace {
	return Keyspace{root: strings.Trim(root, "/")}
}

// Root returns the normalized root prefix.
func (k Keyspace) Root() string { return k.root }

// Key returns the object key of name.
func (k Keyspace) Key(name string) string {
	if k.root == "" {
		return name
	}
	return k.root + "/" + name
}

// Search returns the listing prefix that selects every blob whose name
// starts with prefix.
func (k Keyspace) Search(prefix string) string {
	if k.root == "" {
		return prefix
	}
	return k.root + "/" + prefix
}

// Name returns the blob name of an object key and whether the key lies
// below the root.
func (k Keyspace) Name(key string) (string, bool) {
	if k.root == "" {
		return key, key != ""
	}
	name, ok := strings.CutPrefix(key, k.root+"/")
	return name, ok && name != ""
}
