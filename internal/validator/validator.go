// Package validator syntax-checks generated declarations with the tree-sitter
// TypeScript grammar.
package validator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// SyntaxError is one ERROR or MISSING node of the parse tree
type SyntaxError struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func (e SyntaxError) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Validator checks declaration text
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// CheckFile reads and checks a file
func (v *Validator) CheckFile(ctx context.Context, path string) ([]SyntaxError, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	errs, err := v.Check(ctx, content)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", path).Int("errors", len(errs)).Msg("checked")
	return errs, nil
}

// Check parses content and returns its syntax errors in document order.
// Positions are 1-based.
func (v *Validator) Check(ctx context.Context, content []byte) ([]SyntaxError, error) {
	// parsers are not safe for concurrent use
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	errs := make([]SyntaxError, 0)
	if !root.HasError() {
		return errs, nil
	}

	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()

	walkTree(cursor, func(n *sitter.Node) bool {
		switch {
		case n.IsMissing():
			errs = append(errs, syntaxError(n, "missing "+n.Type()))
			return false
		case n.Type() == "ERROR":
			errs = append(errs, syntaxError(n, "unexpected "+snippet(n.Content(content))))
			return false
		}
		// only subtrees containing errors are worth descending into
		return n.HasError()
	})
	return errs, nil
}

func syntaxError(n *sitter.Node, message string) SyntaxError {
	start := n.StartPoint()
	return SyntaxError{
		Line:    int(start.Row) + 1,
		Column:  int(start.Column) + 1,
		Message: message,
	}
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return fmt.Sprintf("%q", text)
}

// walkTree visits nodes depth-first; fn returns false to skip children
func walkTree(cursor *sitter.TreeCursor, fn func(*sitter.Node) bool) {
	for {
		if fn(cursor.CurrentNode()) && cursor.GoToFirstChild() {
			continue
		}

		for {
			if cursor.GoToNextSibling() {
				break
			}
			if !cursor.GoToParent() {
				return
			}
		}
	}
}
