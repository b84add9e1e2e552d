// Package extractor locates contract metadata inside loosely structured
// external source text: the descriptor table, include/index pairs, and
// procedure registrations. All scanners operate on comment-stripped text.
package extractor

import (
	"context"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Normalizer strips comments from raw source text so the scanners never
// have to worry about commented-out declarations. Strip is safe for
// concurrent use; the underlying parser is not, so parses are serialized.
type Normalizer struct {
	mu     sync.Mutex
	parser *sitter.Parser
	lang   *sitter.Language
	pats   Patterns
}

// NewNormalizer creates a pattern-based Normalizer.
func NewNormalizer(pats Patterns) *Normalizer {
	return &Normalizer{
		parser: sitter.NewParser(),
		pats:   pats,
	}
}

// SetLanguage switches the Normalizer to a real parse: comment nodes are
// located by Tree-sitter instead of the pattern fallback.
func (n *Normalizer) SetLanguage(lang *sitter.Language) {
	n.lang = lang
	n.parser.SetLanguage(lang)
}

// Strip removes block and line comments. Unrecognized comment forms are
// left intact; this is best effort, not a full preprocessor.
func (n *Normalizer) Strip(src string) string {
	if n.lang == nil {
		return n.stripPatterns(src)
	}

	spans, ok := n.commentSpans(src)
	if !ok {
		return n.stripPatterns(src)
	}
	if len(spans) == 0 {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))
	prev := uint32(0)
	for _, s := range spans {
		if s[0] > prev {
			b.WriteString(src[prev:s[0]])
		}
		if s[1] > prev {
			prev = s[1]
		}
	}
	if int(prev) < len(src) {
		b.WriteString(src[prev:])
	}
	return b.String()
}

// commentSpans parses src and collects the byte spans of its comment
// nodes. The parser keeps mutable C-side state, so only one parse may run
// at a time.
func (n *Normalizer) commentSpans(src string) ([][2]uint32, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	tree, err := n.parser.ParseCtx(context.Background(), nil, []byte(src))
	if err != nil {
		return nil, false
	}
	defer tree.Close()

	var spans [][2]uint32
	collectComments(tree.RootNode(), &spans)
	return spans, true
}

func collectComments(node *sitter.Node, spans *[][2]uint32) {
	if node == nil {
		return
	}
	if node.Type() == "comment" {
		*spans = append(*spans, [2]uint32{node.StartByte(), node.EndByte()})
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectComments(node.Child(i), spans)
	}
}

// stripPatterns is the fallback when no grammar is configured: block
// comments first, then line comments, matching text deleted outright.
func (n *Normalizer) stripPatterns(src string) string {
	src = n.pats.BlockComment.ReplaceAllString(src, "")
	return n.pats.LineComment.ReplaceAllString(src, "")
}
