package clausewitz_test

import (
	"slices"
	"testing"

	"github.com/KimNorgaard/go-clausewitz"
	"github.com/stretchr/testify/require"
)

func requireOne(t *testing.T, doc *clausewitz.Document, key, expected string) {
	t.Helper()
	got, err := doc.One(key)
	require.NoError(t, err)
	require.Equal(t, expected, got)
}

func TestParseString_Fields(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{"one field", "blah=test", map[string]string{"blah": "test"}},
		{"quoted key", "\"#1 blah\"=test", map[string]string{"#1 blah": "test"}},
		{"two fields", "blah=test\ntest=blah", map[string]string{"blah": "test", "test": "blah"}},
		{"two fields inline", "blah=test test=blah", map[string]string{"blah": "test", "test": "blah"}},
		{"unclosed literal on first", "blah=\"test\ntest=blah", map[string]string{"blah": "test", "test": "blah"}},
		{"empty line between", "blah=test\n\ntest=blah", map[string]string{"blah": "test", "test": "blah"}},
		{"comment breaking value", "blah=test#blughablargh\ntest=blah", map[string]string{"blah": "test", "test": "blah"}},
		{"weird spacing", "blah =   test\n test \t =blah ", map[string]string{"blah": "test", "test": "blah"}},
		{"quoted string", "blah = \"this is a test\"", map[string]string{"blah": "this is a test"}},
		{"windows line endings", "blah=test\r\ntest=blah\r\n", map[string]string{"blah": "test", "test": "blah"}},
		{"comment between key and value", "blah = # why\n test", map[string]string{"blah": "test"}},
		{"comment between key and equals", "blah # why\n= test", map[string]string{"blah": "test"}},
		{"byte order mark", "\uFEFFblah=test", map[string]string{"blah": "test"}},
		{"escaped quote", `blah="say \"hi\""`, map[string]string{"blah": `say "hi"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := clausewitz.ParseString(tt.input)
			require.Equal(t, len(tt.expected), doc.Count())
			for key, value := range tt.expected {
				requireOne(t, doc, key, value)
			}
		})
	}
}

func TestParseString_KeylessValues(t *testing.T) {
	doc := clausewitz.ParseString("blah test")
	require.Equal(t, 2, doc.Count())
	keyless := slices.Collect(doc.Many(""))
	require.ElementsMatch(t, []string{"blah", "test"}, keyless)
}

func TestParseString_MixedKeylessAndKeyValue(t *testing.T) {
	doc := clausewitz.ParseString("blah test=stuff")
	require.Equal(t, 2, doc.Count())
	require.Equal(t, []string{"blah"}, slices.Collect(doc.Many("")))
	requireOne(t, doc, "test", "stuff")
}

func TestParseString_RepeatedKeysKeepOrder(t *testing.T) {
	doc := clausewitz.ParseString("blah=test\n\nblah=testing")
	require.Equal(t, []string{"test", "testing"}, slices.Collect(doc.Many("blah")))
	requireOne(t, doc, "blah", "test")
}

func TestParseString_NestedObject(t *testing.T) {
	inputs := map[string]string{
		"inline brace":      "blah={\nbluh=test bleh=blegh\nflargh=flemish}",
		"brace on new line": "blah=\n{\nbluh=test bleh=blegh\nflargh=flemish}",
		"spaced":            "blah = {\n\tbluh = test\n\tbleh = blegh\n\tflargh = flemish\n}\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			doc := clausewitz.ParseString(input)
			require.Equal(t, 1, doc.Count())
			nested, err := doc.OneNested("blah")
			require.NoError(t, err)
			require.Equal(t, 3, nested.Count())
			requireOne(t, nested, "bluh", "test")
			requireOne(t, nested, "bleh", "blegh")
			requireOne(t, nested, "flargh", "flemish")
		})
	}
}

func TestParseString_CommentInsideQuotedNestedValue(t *testing.T) {
	const nestedString = "I am test #whatever"
	doc := clausewitz.ParseString("blah = {test=\"" + nestedString + "\"}")
	require.Equal(t, 1, doc.Count())
	nested, err := doc.OneNested("blah")
	require.NoError(t, err)
	requireOne(t, nested, "test", nestedString)
}

func TestParseString_DeepNesting(t *testing.T) {
	doc := clausewitz.ParseString("a={b={c={d=deep}}} after=yes")
	require.Equal(t, 2, doc.Count())

	cur := doc
	for _, key := range []string{"a", "b", "c"} {
		next, err := cur.OneNested(key)
		require.NoError(t, err, key)
		require.Equal(t, 1, next.Count())
		cur = next
	}
	requireOne(t, cur, "d", "deep")
	requireOne(t, doc, "after", "yes")
}

func TestParseString_KeylessNestedBlocks(t *testing.T) {
	doc := clausewitz.ParseString("list = { { 1 2 } { 3 } }")
	list, err := doc.OneNested("list")
	require.NoError(t, err)
	require.Equal(t, 2, list.Count())

	var blocks [][]string
	for block := range list.ManyNested("") {
		blocks = append(blocks, slices.Collect(block.Many("")))
	}
	require.Equal(t, [][]string{{"1", "2"}, {"3"}}, blocks)
}

func TestParseString_PermissiveRecovery(t *testing.T) {
	t.Run("missing closing braces", func(t *testing.T) {
		doc := clausewitz.ParseString("a={b={c=d")
		a, err := doc.OneNested("a")
		require.NoError(t, err)
		b, err := a.OneNested("b")
		require.NoError(t, err)
		requireOne(t, b, "c", "d")
	})

	t.Run("stray closing brace", func(t *testing.T) {
		doc := clausewitz.ParseString("a=b } c=d")
		require.Equal(t, 2, doc.Count())
		requireOne(t, doc, "a", "b")
		requireOne(t, doc, "c", "d")
	})

	t.Run("stray equals", func(t *testing.T) {
		doc := clausewitz.ParseString("= a=b")
		require.Equal(t, 1, doc.Count())
		requireOne(t, doc, "a", "b")
	})

	t.Run("doubled equals", func(t *testing.T) {
		doc := clausewitz.ParseString("a == b")
		require.Equal(t, 1, doc.Count())
		requireOne(t, doc, "a", "b")
	})

	t.Run("missing value before closing brace", func(t *testing.T) {
		doc := clausewitz.ParseString("x={a=} y=z")
		x, err := doc.OneNested("x")
		require.NoError(t, err)
		requireOne(t, x, "a", "")
		requireOne(t, doc, "y", "z")
	})

	t.Run("missing value at end", func(t *testing.T) {
		doc := clausewitz.ParseString("a=")
		require.Equal(t, 1, doc.Count())
		requireOne(t, doc, "a", "")
	})

	t.Run("unterminated quote at end of input", func(t *testing.T) {
		doc := clausewitz.ParseString(`a="never closed`)
		requireOne(t, doc, "a", "never closed")
	})

	t.Run("only keyless values", func(t *testing.T) {
		doc := clausewitz.ParseString("one two\nthree # four\n")
		require.Equal(t, []string{"one", "two", "three"}, slices.Collect(doc.Many("")))
	})
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "# only a comment", "\uFEFF"} {
		doc := clausewitz.ParseString(input)
		require.Equal(t, 0, doc.Count(), "%q", input)
	}
}

func TestParse_Strict(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected clausewitz.ParseErrors
	}{
		{
			name:  "unterminated quote",
			input: "a=\"open\nb=c",
			expected: clausewitz.ParseErrors{
				{Message: "unterminated quoted string", Line: 1, Column: 3},
			},
		},
		{
			name:  "stray closing brace",
			input: "a=b\n}",
			expected: clausewitz.ParseErrors{
				{Message: "unexpected '}'", Line: 2, Column: 1},
			},
		},
		{
			name:  "stray equals",
			input: "= a",
			expected: clausewitz.ParseErrors{
				{Message: "unexpected '=' without a key", Line: 1, Column: 1},
			},
		},
		{
			name:  "doubled equals",
			input: "a == b",
			expected: clausewitz.ParseErrors{
				{Message: "unexpected '='", Line: 1, Column: 4},
			},
		},
		{
			name:  "missing value",
			input: "x = { a = }",
			expected: clausewitz.ParseErrors{
				{Message: `missing value for key "a"`, Line: 1, Column: 7},
			},
		},
		{
			name:  "unclosed braces",
			input: "a = {\n  b = {\n",
			expected: clausewitz.ParseErrors{
				{Message: "unclosed '{'", Line: 2, Column: 7},
				{Message: "unclosed '{'", Line: 1, Column: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := clausewitz.Parse([]byte(tt.input), clausewitz.Strict())
			require.Nil(t, doc)
			var perrs clausewitz.ParseErrors
			require.ErrorAs(t, err, &perrs)
			require.Equal(t, tt.expected, perrs)

			// The same input parses without complaint by default.
			doc, err = clausewitz.Parse([]byte(tt.input))
			require.NoError(t, err)
			require.NotNil(t, doc)
		})
	}
}

func TestParse_StrictWellFormed(t *testing.T) {
	doc, err := clausewitz.Parse([]byte("a = { b = \"c d\" } # fine\ne f"), clausewitz.Strict())
	require.NoError(t, err)
	require.Equal(t, 3, doc.Count())
}

func TestParseErrors_Error(t *testing.T) {
	errs := clausewitz.ParseErrors{
		{Message: "unexpected '}'", Line: 2, Column: 1},
		{Message: "unclosed '{'", Line: 1, Column: 5},
	}
	require.EqualError(t, errs, "clausewitz: parsing error at line 2, column 1: unexpected '}' (and 1 more)")
	require.EqualError(t, errs[:1], "clausewitz: parsing error at line 2, column 1: unexpected '}'")
}
