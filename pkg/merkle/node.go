// Package merkle fingerprints conversations as a chain of content-addressed nodes.
package merkle

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Node is one conversation entry plus the hash of everything before it.
type Node struct {
	// Hash is the hex SHA-256 of the parent hash and the content.
	Hash string `json:"hash"`

	// ParentHash is nil for the first entry of a conversation.
	ParentHash *string `json:"parent_hash"`

	// Depth is the zero-based position of the entry in its conversation.
	Depth int `json:"depth"`

	Content any `json:"content"`
}

// hashInput is the canonical form that gets hashed. Depth is implied by the
// parent chain and left out.
type hashInput struct {
	Parent  string `json:"parent,omitempty"`
	Content any    `json:"content"`
}

// NewNode creates a node for content appended after parent.
func NewNode(content any, parent *Node) *Node {
	n := &Node{Content: content}

	if parent != nil {
		n.ParentHash = &parent.Hash
		n.Depth = parent.Depth + 1
	}

	n.Hash = n.computeHash()
	return n
}

func (n *Node) computeHash() string {
	in := hashInput{Content: n.Content}
	if n.ParentHash != nil {
		in.Parent = *n.ParentHash
	}

	// encoding/json sorts map keys, so equal content always encodes the same.
	data, err := json.Marshal(in)
	if err != nil {
		panic("merkle: content is not JSON encodable: " + err.Error())
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
