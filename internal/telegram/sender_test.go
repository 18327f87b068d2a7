package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortTextUntouched(t *testing.T) {
	parts := SplitMessage("привіт", 100)
	assert.Equal(t, []string{"привіт"}, parts)
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	text := strings.Repeat("рядок тексту\n", 20)
	parts := SplitMessage(text, 50)

	require.Greater(t, len(parts), 1)
	for i, part := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(part), 50)
		if i < len(parts)-1 {
			assert.True(t, strings.HasSuffix(part, "\n"), "part %d should end at a line break", i)
		}
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessageHardSplitWithoutNewlines(t *testing.T) {
	text := strings.Repeat("ї", 120)
	parts := SplitMessage(text, 50)

	require.Len(t, parts, 3)
	assert.Equal(t, 50, utf8.RuneCountInString(parts[0]))
	assert.Equal(t, 50, utf8.RuneCountInString(parts[1]))
	assert.Equal(t, 20, utf8.RuneCountInString(parts[2]))
	assert.Equal(t, text, strings.Join(parts, ""))
}
