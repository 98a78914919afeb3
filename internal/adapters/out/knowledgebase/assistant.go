// Package knowledgebase answers customer questions from a local text file of
// paragraphs separated by blank lines. A paragraph wins when it contains at
// least half of the question's keywords.
package knowledgebase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"unicode"

	"restaurant/internal/core/ports"
)

const (
	minMatchRatio = 0.5
	fallbackReply = "I couldn't find information about that in our knowledge base. " +
		"You can ask about the menu, ordering, delivery times or restaurant services."
)

var stopWords = map[string]struct{}{
	"what": {}, "the": {}, "how": {}, "does": {}, "can": {}, "you": {}, "are": {},
	"for": {}, "with": {}, "from": {}, "about": {}, "your": {}, "have": {}, "when": {},
}

type entry struct {
	text  string
	words map[string]struct{}
}

// Assistant is a ports.Assistant over an immutable set of paragraphs.
type Assistant struct {
	entries []entry
}

// Load reads the knowledge file at path. A missing file yields an assistant
// that always falls back.
func Load(path string) (*Assistant, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	return New(string(raw)), nil
}

func New(content string) *Assistant {
	a := &Assistant{}
	for _, para := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		words := make(map[string]struct{})
		for _, w := range tokenize(para) {
			words[w] = struct{}{}
		}
		a.entries = append(a.entries, entry{text: para, words: words})
	}
	return a
}

// Ask picks the paragraph sharing the most keywords with question. Confidence
// is the share of keywords found.
func (a *Assistant) Ask(ctx context.Context, question string) (ports.Reply, error) {
	if err := ctx.Err(); err != nil {
		return ports.Reply{}, err
	}

	keywords := keywordsOf(question)
	if len(keywords) == 0 {
		return ports.Reply{Text: fallbackReply}, nil
	}

	best, bestHits := -1, 0
	for i, e := range a.entries {
		hits := 0
		for _, k := range keywords {
			if _, ok := e.words[k]; ok {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = i, hits
		}
	}

	confidence := float64(bestHits) / float64(len(keywords))
	if best < 0 || confidence < minMatchRatio {
		return ports.Reply{Text: fallbackReply}, nil
	}

	return ports.Reply{
		Text:       a.entries[best].text,
		Confidence: confidence,
		Source:     fmt.Sprintf("kb:%d", best+1),
	}, nil
}

// keywordsOf drops stop words and short words, keeping at least something
// for very short questions.
func keywordsOf(question string) []string {
	all := tokenize(question)
	var out []string
	for _, w := range all {
		if _, stop := stopWords[w]; stop || len(w) <= 2 {
			continue
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		out = all
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
