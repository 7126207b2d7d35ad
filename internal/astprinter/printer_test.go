package astprinter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/internal/astparser"
	"github.com/wundergraph/graphql-core-engine/internal/astprinter"
	"github.com/wundergraph/graphql-core-engine/internal/source"
)

func TestPrintRoundTripsParse(t *testing.T) {
	inputs := []string{
		`{ hero { name } }`,
		`query HeroName($ep: Episode = JEDI) { hero(episode: $ep) @include(if: true) { name } }`,
		`fragment F on Character { name friends { name } }`,
	}
	for _, in := range inputs {
		doc, report := astparser.ParseExecutableDocument(source.New(in))
		require.False(t, report.HasErrors(), "%v", report.ExternalErrors)
		printed := astprinter.Print(doc)

		doc2, report2 := astparser.ParseExecutableDocument(source.New(printed))
		require.False(t, report2.HasErrors(), "re-parsing %q: %v", printed, report2.ExternalErrors)
		printed2 := astprinter.Print(doc2)
		assert.Equal(t, printed, printed2, "print(parse(x)) should be a fixed point")
	}
}

func TestPrintSchema(t *testing.T) {
	doc, report := astparser.ParseTypeSystemDocument(source.New(`
		type Query {
			hero(episode: Episode): Character
		}
	`))
	require.False(t, report.HasErrors())
	printed := astprinter.Print(doc)
	assert.Contains(t, printed, "type Query {")
	assert.Contains(t, printed, "hero(episode: Episode): Character")
}
