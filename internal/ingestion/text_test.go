package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	input := "# Jane Doe\n  ## Experience\nContent here"
	result := CleanText(input)

	assert.Equal(t, "# Jane Doe\n## Experience\nContent here", result)
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Item 1\n  * Item 2\n• Item 3\n· Item 4"
	result := CleanText(input)

	assert.Equal(t, "- Item 1\n* Item 2\n• Item 3\n• Item 4", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Acme Corp   |   Engineer\t|  2020"
	result := CleanText(input)

	assert.Equal(t, "Acme Corp | Engineer | 2020", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Line 1\n\n\n\n\nLine 2"
	result := CleanText(input)

	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_KeepsSingleBlankLine(t *testing.T) {
	input := "Acme | Engineer\n- Built\n   \nGlobex | Lead\n- Led"
	result := CleanText(input)

	assert.Equal(t, "Acme | Engineer\n- Built\n\nGlobex | Lead\n- Led", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := CleanText(input)

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Zoë Müller 🚀 spéciàl chàracters"
	assert.Equal(t, input, CleanText(input))
}

func TestCleanText_PreserveIndentation(t *testing.T) {
	input := "Header\n    Indented   line"
	assert.Equal(t, "Header\n    Indented line", CleanText(input))
}
