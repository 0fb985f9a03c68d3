package validator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDeclaration = `/**
 * Generated by dtsgen. Do not edit.
 */
declare namespace svc {
    interface GetResp {
        value?: string;
    }

    interface ServiceClient {
        Get(input: GetMsg, completed: (output: GetResp) => void): void;
    }

    type Status = "A" | "B";

}
`

func TestCheck_Valid(t *testing.T) {
	errs, err := NewValidator().Check(context.Background(), []byte(validDeclaration))
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestCheck_Invalid(t *testing.T) {
	content := "declare namespace svc {\n    interface A {\n        value?: ;\n    }\n"

	errs, err := NewValidator().Check(context.Background(), []byte(content))
	require.NoError(t, err)
	require.NotEmpty(t, errs)

	for _, e := range errs {
		assert.GreaterOrEqual(t, e.Line, 1)
		assert.GreaterOrEqual(t, e.Column, 1)
		assert.NotEmpty(t, e.Message)
	}
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svc.d.ts")
	require.NoError(t, os.WriteFile(path, []byte(validDeclaration), 0644))

	errs, err := NewValidator().CheckFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, errs)

	_, err = NewValidator().CheckFile(context.Background(), filepath.Join(t.TempDir(), "missing.d.ts"))
	assert.Error(t, err)
}

func TestSyntaxError_String(t *testing.T) {
	e := SyntaxError{Line: 3, Column: 17, Message: "missing }"}
	assert.Equal(t, "3:17: missing }", e.String())
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, `"a b"`, snippet("a\n   b"))
	assert.Equal(t, `"`+"0123456789012345678901234567890123456789"+`..."`,
		snippet("0123456789012345678901234567890123456789xyz"))
}
