/*
Package clausewitz reads and writes the plain-text key-value format used by
the save and definition files of several grand strategy games.

A file is a sequence of entries. An entry is either key=value, key={ ... }
holding a nested block of entries, or a bare value without a key:

	# country history
	capital = 183
	add_core = FRA
	add_core = BUR
	name = "Kingdom of France"
	color = { 20 50 210 }
	1444.11.11 = {
		monarch = { name = Louis dynasty = Valois }
	}

Whitespace only separates tokens, so a value may sit on the line after its
key and several entries may share a line. A '#' starts a comment that runs to
the end of the line, except inside double quotes. Keys may repeat, and the
order of entries is kept.

The parser is deliberately forgiving. A quote left open is closed at the end
of its line, unmatched closing braces are dropped, and braces still open at
the end of the input are closed there. Parse with the Strict option reports
these recoveries as a ParseErrors value instead.

Inside quotes \" and \\ stand for a quote and a backslash, and \n and \r for
line breaks; any other backslash is kept literally.

# Documents

ParseString and Parse return a *Document, an ordered multi-map whose values
are either a Scalar or a nested *Document. Values without a key are stored
under the empty key:

	doc := clausewitz.ParseString("add_core = FRA add_core = BUR")
	first, err := doc.One("add_core") // "FRA"
	for tag := range doc.Many("add_core") {
		// "FRA", then "BUR"
	}

Documents are built with Set and SetNested and written back with Marshal or
String. Marshal quotes keys and values whenever needed, so parsing its output
gives back an equal document.

# Go values

Unmarshal and Marshal map documents onto structs, maps and slices:

	type Country struct {
		Capital int      `clausewitz:"capital"`
		Cores   []string `clausewitz:"add_core"`
		Color   []int    `clausewitz:"color"`
	}

	var c Country
	err := clausewitz.Unmarshal(data, &c)
*/
package clausewitz
