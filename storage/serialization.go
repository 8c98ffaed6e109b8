// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/omnisearch/core"
)

// maxTreeDepth bounds recursion when decoding untrusted bytes.
const maxTreeDepth = 256

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	return core.ID(v), err
}

// MarshalNode serializes a navigation tree rooted at node.
func MarshalNode(node *core.NavigationNode) []byte {
	buf := make([]byte, sizeNode(node))
	marshalNode(node, buf)
	return buf
}

// UnmarshalNode deserializes a navigation tree.
func UnmarshalNode(data []byte) (*core.NavigationNode, error) {
	node, _, err := unmarshalNode(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return node, nil
}

// MarshalStoredTree serializes a StoredTree.
func MarshalStoredTree(tree *core.StoredTree) []byte {
	size := ord.String.Size(tree.Name) +
		varint.Uint64.Size(uint64(tree.Checksum)) +
		varint.Int64.Size(tree.SavedAt.UnixNano()) +
		sizeNode(tree.Root)
	buf := make([]byte, size)
	n := ord.String.Marshal(tree.Name, buf)
	n += varint.Uint64.Marshal(uint64(tree.Checksum), buf[n:])
	n += varint.Int64.Marshal(tree.SavedAt.UnixNano(), buf[n:])
	marshalNode(tree.Root, buf[n:])
	return buf
}

// UnmarshalStoredTree deserializes a StoredTree.
func UnmarshalStoredTree(data []byte) (*core.StoredTree, error) {
	var (
		tree core.StoredTree
		n    int
	)
	name, m, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: name: %w", ErrSerializationFailed, err)
	}
	n += m
	checksum, m, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: checksum: %w", ErrSerializationFailed, err)
	}
	n += m
	savedAt, m, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: savedAt: %w", ErrSerializationFailed, err)
	}
	n += m
	root, _, err := unmarshalNode(data[n:], 0)
	if err != nil {
		return nil, fmt.Errorf("%w: root: %w", ErrSerializationFailed, err)
	}

	tree.Name = name
	tree.Checksum = core.ID(checksum)
	tree.SavedAt = time.Unix(0, savedAt).UTC()
	tree.Root = root
	return &tree, nil
}

// A nil node is encoded as a single false presence flag.
func sizeNode(node *core.NavigationNode) int {
	if node == nil {
		return ord.Bool.Size(false)
	}
	size := ord.Bool.Size(true) +
		ord.String.Size(node.ID) +
		ord.String.Size(node.Label) +
		ord.String.Size(node.URL) +
		ord.String.Size(node.SearchPhrase) +
		sizeStrings(node.Keywords) +
		ord.String.Size(node.Description) +
		ord.Bool.Size(node.Admin) +
		varint.Int64.Size(node.Visits.TotalHits) +
		ord.Bool.Size(node.Visits.MostRecentHit != nil)
	if node.Visits.MostRecentHit != nil {
		size += varint.Int64.Size(node.Visits.MostRecentHit.UnixNano())
	}
	size += varint.Int64.Size(int64(len(node.Children)))
	for _, child := range node.Children {
		size += sizeNode(child)
	}
	return size
}

func marshalNode(node *core.NavigationNode, bs []byte) (n int) {
	if node == nil {
		return ord.Bool.Marshal(false, bs)
	}
	n = ord.Bool.Marshal(true, bs)
	n += ord.String.Marshal(node.ID, bs[n:])
	n += ord.String.Marshal(node.Label, bs[n:])
	n += ord.String.Marshal(node.URL, bs[n:])
	n += ord.String.Marshal(node.SearchPhrase, bs[n:])
	n += marshalStrings(node.Keywords, bs[n:])
	n += ord.String.Marshal(node.Description, bs[n:])
	n += ord.Bool.Marshal(node.Admin, bs[n:])
	n += varint.Int64.Marshal(node.Visits.TotalHits, bs[n:])
	n += ord.Bool.Marshal(node.Visits.MostRecentHit != nil, bs[n:])
	if node.Visits.MostRecentHit != nil {
		n += varint.Int64.Marshal(node.Visits.MostRecentHit.UnixNano(), bs[n:])
	}
	n += varint.Int64.Marshal(int64(len(node.Children)), bs[n:])
	for _, child := range node.Children {
		n += marshalNode(child, bs[n:])
	}
	return n
}

func unmarshalNode(bs []byte, depth int) (node *core.NavigationNode, n int, err error) {
	if depth > maxTreeDepth {
		return nil, 0, fmt.Errorf("tree deeper than %d levels", maxTreeDepth)
	}
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}

	node = &core.NavigationNode{}
	var m int
	fields := []*string{&node.ID, &node.Label, &node.URL, &node.SearchPhrase}
	for _, f := range fields {
		if *f, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return nil, n, err
		}
		n += m
	}
	if node.Keywords, m, err = unmarshalStrings(bs[n:]); err != nil {
		return nil, n, err
	}
	n += m
	if node.Description, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return nil, n, err
	}
	n += m
	if node.Admin, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return nil, n, err
	}
	n += m
	if node.Visits.TotalHits, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return nil, n, err
	}
	n += m

	hasRecent, m, err := ord.Bool.Unmarshal(bs[n:])
	if err != nil {
		return nil, n, err
	}
	n += m
	if hasRecent {
		nanos, m, err := varint.Int64.Unmarshal(bs[n:])
		if err != nil {
			return nil, n, err
		}
		n += m
		ts := time.Unix(0, nanos).UTC()
		node.Visits.MostRecentHit = &ts
	}

	count, m, err := unmarshalLength(bs[n:])
	if err != nil {
		return nil, n, err
	}
	n += m
	if count > 0 {
		node.Children = make([]*core.NavigationNode, 0, count)
	}
	for range count {
		child, m, err := unmarshalNode(bs[n:], depth+1)
		if err != nil {
			return nil, n, err
		}
		n += m
		node.Children = append(node.Children, child)
	}
	return node, n, nil
}

func sizeStrings(ss []string) int {
	size := varint.Int64.Size(int64(len(ss)))
	for _, s := range ss {
		size += ord.String.Size(s)
	}
	return size
}

func marshalStrings(ss []string, bs []byte) (n int) {
	n = varint.Int64.Marshal(int64(len(ss)), bs)
	for _, s := range ss {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func unmarshalStrings(bs []byte) (ss []string, n int, err error) {
	count, n, err := unmarshalLength(bs)
	if err != nil || count == 0 {
		return nil, n, err
	}
	ss = make([]string, 0, count)
	for range count {
		s, m, err := ord.String.Unmarshal(bs[n:])
		if err != nil {
			return nil, n, err
		}
		n += m
		ss = append(ss, s)
	}
	return ss, n, nil
}

// unmarshalLength reads an element count. Every element takes at least one
// byte, so counts larger than the remaining input are rejected.
func unmarshalLength(bs []byte) (int, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return 0, n, err
	}
	if v < 0 || v > int64(len(bs)-n) {
		return 0, n, ErrTruncatedData
	}
	return int(v), n, nil
}
