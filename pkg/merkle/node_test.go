package merkle_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/wayfinder/pkg/llm"
	"github.com/papercomputeco/wayfinder/pkg/merkle"
)

var _ = Describe("Node", func() {
	Describe("NewNode", func() {
		Context("when creating a root node (no parent)", func() {
			It("creates a node with the given content", func() {
				content := "hello world"
				node := merkle.NewNode(content, nil)

				Expect(node.Content).To(Equal(content))
			})

			It("sets ParentHash to nil for root nodes", func() {
				node := merkle.NewNode("test", nil)

				Expect(node.ParentHash).To(BeNil())
			})

			It("computes a non-empty hash", func() {
				node := merkle.NewNode("test", nil)

				Expect(node.Hash).NotTo(BeEmpty())
			})

			It("produces consistent hashes for the same content", func() {
				node1 := merkle.NewNode("same content", nil)
				node2 := merkle.NewNode("same content", nil)

				Expect(node1.Hash).To(Equal(node2.Hash))
			})

			It("produces different hashes for different content", func() {
				node1 := merkle.NewNode("content A", nil)
				node2 := merkle.NewNode("content B", nil)

				Expect(node1.Hash).NotTo(Equal(node2.Hash))
			})

			It("handles message content", func() {
				content := llm.NewMessage(llm.RoleUser, "coffee near me")
				node := merkle.NewNode(content, nil)

				Expect(node.Hash).NotTo(BeEmpty())
				Expect(node.Content).To(Equal(content))
			})

			It("distinguishes roles with the same text", func() {
				user := merkle.NewNode(llm.NewMessage(llm.RoleUser, "hi"), nil)
				assistant := merkle.NewNode(llm.NewMessage(llm.RoleAssistant, "hi"), nil)

				Expect(user.Hash).NotTo(Equal(assistant.Hash))
			})
		})

		Context("when creating a child node (with parent)", func() {
			var parent *merkle.Node

			BeforeEach(func() {
				parent = merkle.NewNode("parent content", nil)
			})

			It("creates a child node with the given content", func() {
				child := merkle.NewNode("child content", parent)

				Expect(child.Content).To(Equal("child content"))
			})

			It("links the child to the parent via ParentHash", func() {
				child := merkle.NewNode("child content", parent)

				Expect(child.ParentHash).NotTo(BeNil())
				Expect(*child.ParentHash).To(Equal(parent.Hash))
			})

			It("computes a hash for the child node", func() {
				child := merkle.NewNode("child content", parent)

				Expect(child.Hash).NotTo(BeEmpty())
			})

			It("creates a chain of nodes", func() {
				child1 := merkle.NewNode("child 1", parent)
				child2 := merkle.NewNode("child 2", child1)
				child3 := merkle.NewNode("child 3", child2)

				Expect(parent.ParentHash).To(BeNil())
				Expect(*child1.ParentHash).To(Equal(parent.Hash))
				Expect(*child2.ParentHash).To(Equal(child1.Hash))
				Expect(*child3.ParentHash).To(Equal(child2.Hash))
			})

			It("produces different hashes for same content with different parents", func() {
				parent2 := merkle.NewNode("different parent", nil)
				child1 := merkle.NewNode("same content", parent)
				child2 := merkle.NewNode("same content", parent2)

				Expect(child1.Hash).NotTo(Equal(child2.Hash))
			})
		})
	})

	Describe("Chain", func() {
		var history []llm.Message

		BeforeEach(func() {
			history = []llm.Message{
				llm.NewMessage(llm.RoleUser, "find tacos"),
				llm.NewMessage(llm.RoleAssistant, "Here are three taquerias."),
				llm.NewMessage(llm.RoleUser, "directions to the first"),
			}
		})

		It("returns one node per message in order", func() {
			nodes := merkle.Chain(history)

			Expect(nodes).To(HaveLen(3))
			Expect(nodes[0].ParentHash).To(BeNil())
			Expect(*nodes[1].ParentHash).To(Equal(nodes[0].Hash))
			Expect(*nodes[2].ParentHash).To(Equal(nodes[1].Hash))
			Expect(nodes[2].Content).To(Equal(history[2]))
		})

		It("shares nodes with a conversation that has the same prefix", func() {
			longer := merkle.Chain(append(history, llm.NewMessage(llm.RoleAssistant, "Go north.")))
			shorter := merkle.Chain(history)

			Expect(longer[2].Hash).To(Equal(shorter[2].Hash))
			Expect(merkle.Head(history)).To(Equal(shorter[2].Hash))
		})

		It("returns an empty head for an empty conversation", func() {
			Expect(merkle.Chain([]llm.Message{})).To(BeEmpty())
			Expect(merkle.Head([]llm.Message{})).To(BeEmpty())
			Expect(merkle.Tip([]llm.Message{})).To(BeNil())
		})

		It("returns the last node as the tip", func() {
			tip := merkle.Tip(history)

			Expect(tip.Hash).To(Equal(merkle.Head(history)))
			Expect(tip.Depth).To(Equal(len(history) - 1))
			Expect(tip.Content).To(Equal(history[len(history)-1]))
		})
	})

	Describe("Hash computation", func() {
		It("produces a valid SHA-256 hex string (64 characters)", func() {
			node := merkle.NewNode("test", nil)

			Expect(node.Hash).To(HaveLen(64))
			Expect(node.Hash).To(MatchRegexp("^[a-f0-9]{64}$"))
		})

		It("numbers nodes by their depth in the chain", func() {
			nodes := merkle.Chain([]string{"a", "b", "c"})

			Expect(nodes[0].Depth).To(Equal(0))
			Expect(nodes[2].Depth).To(Equal(2))
		})
	})
})
