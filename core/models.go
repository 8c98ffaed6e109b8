package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// VisitStats carries the visit counters maintained by the host application.
type VisitStats struct {
	TotalHits     int64      `yaml:"totalHits,omitempty"`
	MostRecentHit *time.Time `yaml:"mostRecentHit,omitempty"`
}

// NavigationNode is a node of the application's navigation tree.
// The tree is owned by the caller and never mutated by the engine.
type NavigationNode struct {
	ID           string            `yaml:"id"`
	Label        string            `yaml:"label,omitempty"`
	URL          string            `yaml:"url,omitempty"`
	SearchPhrase string            `yaml:"searchPhrase,omitempty"`
	Keywords     []string          `yaml:"keywords,omitempty"`
	Description  string            `yaml:"description,omitempty"`
	Admin        bool              `yaml:"admin,omitempty"` // leaves below surface as admin pages
	Children     []*NavigationNode `yaml:"children,omitempty"`
	Visits       VisitStats        `yaml:",inline"`
}

// IsLeaf reports whether the node has no children.
func (n *NavigationNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// FlattenedNode is a leaf of the navigation tree together with its ancestor chain,
// ordered from the root downwards.
type FlattenedNode struct {
	Node    *NavigationNode
	Parents []*NavigationNode
}

// WeightedDocument is a searchable unit derived from a navigation leaf.
// Weight blends visit frequency and recency and lies in [0,1].
type WeightedDocument struct {
	FlattenedNode
	Weight       float64
	Kind         ResultKind
	Title        string
	SearchPhrase string
	Keywords     []string
	Description  string
	Breadcrumbs  []string
}

// URL returns the URL of the underlying navigation node.
func (d *WeightedDocument) URL() string {
	if d == nil || d.Node == nil {
		return ""
	}
	return d.Node.URL
}

// Nugget is a small key/value fact attached to a direct lookup result.
type Nugget struct {
	Key   string
	Value string
}

// SearchResult is a single displayable search hit.
// Payload, when set, is the originating document and is used only for
// de-duplication and ordering.
type SearchResult struct {
	Type         ResultKind
	URL          string
	Title        string
	Description  string
	ImageURL     string
	Keywords     []string
	Breadcrumbs  []string
	SearchPhrase string
	Nuggets      []Nugget
	Weight       float64
	Payload      *WeightedDocument
}

// ResultGroup is a titled group of results of one kind.
type ResultGroup struct {
	Title   string
	Type    ResultKind
	Results []SearchResult
}

// StoredTree is a persisted navigation tree snapshot.
type StoredTree struct {
	Name     string
	Checksum ID
	Root     *NavigationNode
	SavedAt  time.Time
}
