package parser_test

import (
	"os"
	"strings"
	"testing"

	"github.com/ProtonMail/gmail/parser"
	"github.com/stretchr/testify/require"
)

var parsers = map[string]parser.Parser{
	"go-message": parser.Default(),
	"enmime":     parser.Enmime(),
}

func parseFile(t *testing.T, p parser.Parser, name string) parser.Parsed {
	t.Helper()

	raw, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	parsed, err := p.Parse(raw)
	require.NoError(t, err)

	return parsed
}

func TestParse_Plain(t *testing.T) {
	for name, p := range parsers {
		t.Run(name, func(t *testing.T) {
			parsed := parseFile(t, p, "plain.eml")

			require.Equal(t, "Café tonight", parsed.Header("Subject"))
			require.Equal(t, "", parsed.Header("X-Not-There"))
			require.Equal(t, "Are we still on for tonight?", strings.TrimSpace(parsed.Text()))
			require.Empty(t, parsed.HTML())
			require.Empty(t, parsed.Attachments())
		})
	}
}

func TestParse_Multipart(t *testing.T) {
	for name, p := range parsers {
		t.Run(name, func(t *testing.T) {
			parsed := parseFile(t, p, "multipart.eml")

			require.Equal(t, "The report is attached.", strings.TrimSpace(parsed.Text()))
			require.Contains(t, parsed.HTML(), "<p>The report is attached.</p>")

			attachments := parsed.Attachments()
			require.Len(t, attachments, 1)
			require.Equal(t, "report.csv", attachments[0].Filename)
			require.Equal(t, "text/csv", attachments[0].ContentType)
			require.Equal(t, "a,b,c\n1,2,3\n", string(attachments[0].Content))
			require.Equal(t, 12, attachments[0].Size())
		})
	}
}

func TestParse_Charset(t *testing.T) {
	for name, p := range parsers {
		t.Run(name, func(t *testing.T) {
			parsed := parseFile(t, p, "latin1.eml")

			require.Contains(t, parsed.Text(), "Voilà, see you there.")
		})
	}
}

func TestParsed_Field(t *testing.T) {
	for name, p := range parsers {
		t.Run(name, func(t *testing.T) {
			parsed := parseFile(t, p, "multipart.eml")

			text, ok := parsed.Field("text")
			require.True(t, ok)
			require.Equal(t, parsed.Text(), text)

			attachments, ok := parsed.Field("Attachments")
			require.True(t, ok)
			require.Len(t, attachments, 1)

			subject, ok := parsed.Field("Subject")
			require.True(t, ok)
			require.Equal(t, "Report", subject)

			_, ok = parsed.Field("X-Not-There")
			require.False(t, ok)
		})
	}
}

func TestEnmime_Reply(t *testing.T) {
	parsed := parseFile(t, parser.Enmime(), "latin1.eml")

	stripped, ok := parsed.Field("reply")
	require.True(t, ok)
	require.Contains(t, stripped, "Voilà, see you there.")
	require.NotContains(t, stripped, "Lunch at noon?")

	_, ok = parseFile(t, parser.Default(), "latin1.eml").Field("reply")
	require.False(t, ok)
}
