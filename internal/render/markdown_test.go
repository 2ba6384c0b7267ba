package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAgentResult(t *testing.T) {
	raw := "**Potential Issues**\n\n* Unchecked error on line 4\n* Shadowed variable `err`\n\n**Suggestions**\n* Wrap errors\n**Note:** consider tests\n```go\nif err != nil {\n\n  return err\n}\n```\n* after code"

	want := "## Potential Issues\n\n" +
		"1. Unchecked error on line 4\n2. Shadowed variable `err`\n\n" +
		"## Suggestions\n\n" +
		"1. Wrap errors\n\n" +
		"Note: consider tests\n\n" +
		"```go\nif err != nil {\n  return err\n}\n```\n\n" +
		"2. after code"

	assert.Equal(t, want, FormatAgentResult(raw))
}

func TestFormatAgentResultEdgeCases(t *testing.T) {
	assert.Equal(t, "", FormatAgentResult(""))
	assert.Equal(t, "", FormatAgentResult("\n  \n"))
	assert.Equal(t, "No results returned.", FormatAgentResult("No results returned."))
	assert.Equal(t, "## Bold nested title", FormatAgentResult("**Bold **nested** title**"))
	assert.Equal(t, "```\nunterminated\n```", FormatAgentResult("```\nunterminated"))
	assert.Equal(t, "1. crlf", FormatAgentResult("* crlf\r\n"))
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown("# Title\n\nSome **bold** text.", MarkdownOptions{Width: 60, Style: "notty"})
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}
