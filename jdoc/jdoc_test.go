// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/mlkit/jdoc"
	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

const testJSON = `{
  "name": "sample",
  "count": 3,
  "ratio": 0.25,
  "ok": true,
  "none": null,
  "tags": ["a", "b\tc", "d\"e"],
  "rows": [
    {"x": 1, "y": [1.5, -2]},
    {"x": 2, "y": []}
  ],
  "nested": {"deep": {"deeper": [[], {}]}}
}`

func mustParse(t *testing.T, input string) *jdoc.Doc {
	t.Helper()
	d, err := jdoc.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse %q: unexpected error: %v", input, err)
	}
	return d
}

func TestMinimalParse(t *testing.T) {
	d := mustParse(t, `{"a":1,"b":[true,null,-2.5]}`)
	root := d.Root()
	if root.Kind() != jdoc.Object {
		t.Fatalf("Root kind: got %v, want object", root.Kind())
	}

	a, err := root.FieldIfExists("a")
	if err != nil || a == nil {
		t.Fatalf(`FieldIfExists("a"): got %v, %v`, a, err)
	}
	if v, err := a.AsInt(); err != nil || v != 1 {
		t.Errorf("AsInt: got %v, %v; want 1", v, err)
	}

	b, err := root.Field("b")
	if err != nil {
		t.Fatalf(`Field("b"): %v`, err)
	}
	var kinds []jdoc.Kind
	for v := range b.Items() {
		kinds = append(kinds, v.Kind())
	}
	if diff := cmp.Diff([]jdoc.Kind{jdoc.Bool, jdoc.Null, jdoc.Double}, kinds); diff != "" {
		t.Errorf("Item kinds (-want, +got):\n%s", diff)
	}
	last, err := b.Path(-1)
	if err != nil {
		t.Fatalf("Path(-1): %v", err)
	}
	if v, err := last.AsDouble(); err != nil || v != -2.5 {
		t.Errorf("AsDouble: got %v, %v; want -2.5", v, err)
	}
	if got, want := d.Root().JSON(), `{"a":1,"b":[true,null,-2.50000000000000]}`; got != want {
		t.Errorf("JSON: got %q, want %q", got, want)
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`"\"hi\n\\\""`, "\"hi\n\\\""},
		{`"a\/b"`, "a/b"},
		{`"\b\f\r\t"`, "\b\f\r\t"},
		{`"x\u00e9y"`, "x_y"},
		{`"\\"`, `\`},
		{`"tr\\\\"`, `tr\\`},
		{"\"caf\xc3\xa9\"", "caf\xc3\xa9"},
	}
	for _, tc := range tests {
		d := mustParse(t, tc.input)
		got, err := d.Root().AsString()
		if err != nil {
			t.Errorf("AsString %q: %v", tc.input, err)
		} else if got != tc.want {
			t.Errorf("Parse %q: got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestDuplicateKey(t *testing.T) {
	d := mustParse(t, `{"k":1,"k":2}`)
	v, err := d.Root().FieldIfExists("k")
	if err != nil {
		t.Fatalf("FieldIfExists: %v", err)
	}
	if n, _ := v.AsInt(); n != 2 {
		t.Errorf("Value of k: got %d, want 2", n)
	}
	if got, want := d.Root().Len(), 2; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}
	if got, want := d.Root().JSON(), `{"k":1,"k":2}`; got != want {
		t.Errorf("JSON: got %q, want %q", got, want)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  jdoc.Kind
		want  float64
	}{
		{"0", jdoc.Int, 0},
		{"-0", jdoc.Int, 0},
		{"12345", jdoc.Int, 12345},
		{"-9223372036854775808", jdoc.Int, math.MinInt64},
		{"1e3", jdoc.Int, 1000},
		{"1E2", jdoc.Int, 100},
		{"2.5e1", jdoc.Double, 25},
		{"-0.125", jdoc.Double, -0.125},
		{"1.5e308", jdoc.Double, 1.5e308},
	}
	for _, tc := range tests {
		d := mustParse(t, tc.input)
		root := d.Root()
		if root.Kind() != tc.kind {
			t.Errorf("Parse %q: got kind %v, want %v", tc.input, root.Kind(), tc.kind)
			continue
		}
		if got, err := root.AsDouble(); err != nil || got != tc.want {
			t.Errorf("Parse %q: got %v, %v; want %v", tc.input, got, err, tc.want)
		}
	}

	// Integers written with an exponent must not have a fractional part.
	for _, input := range []string{"1e-3", "15e-1", "1e19", "-1e30"} {
		d, err := jdoc.Parse([]byte(input))
		var serr *jdoc.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %q: got %v, %v; want *SyntaxError", input, d, err)
		}
	}
	if d := mustParse(t, "20e-1"); d.Root().JSON() != "2" {
		t.Errorf("Parse 20e-1: got %s, want 2", d.Root().JSON())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input     string
		line, col int
		msg       string
	}{
		{"", 1, 1, "end of input"},
		{"   ", 1, 4, "end of input"},
		{`{"a":1,}`, 1, 8, "field name"},
		{`{"a" 1}`, 1, 6, `want ":"`},
		{`{"a":1`, 1, 7, "end of input"},
		{`[1,2`, 1, 5, "end of input"},
		{`[1,]`, 1, 4, "want value"},
		{`[1 2]`, 1, 4, `"," or "]"`},
		{`"abc`, 1, 5, "in string"},
		{`"abc\`, 1, 6, "in string"},
		{`"\q"`, 1, 1, "invalid string"},
		{`"\u12"`, 1, 1, "invalid string"},
		{`tru`, 1, 1, "true"},
		{`nul!`, 1, 1, "null"},
		{`1 2`, 1, 3, "after value"},
		{`{} x`, 1, 4, "after value"},
		{`-`, 1, 2, "invalid integer"},
		{`123456789012345678901`, 1, 22, "invalid integer"},
		{`1.5e309`, 1, 8, "invalid number"},
		{`1.6e308`, 1, 8, "out of range"},
		{`@`, 1, 1, "want value"},
		{"{\n  \"a\": x}", 2, 8, "want value"},
	}
	for _, tc := range tests {
		d, err := jdoc.Parse([]byte(tc.input))
		if err == nil {
			t.Errorf("Parse %q: got %v, want error", tc.input, d.Root())
			continue
		}
		var serr *jdoc.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %q: got error %T, want *SyntaxError", tc.input, err)
			continue
		}
		if serr.Location.Line != tc.line || serr.Location.Column != tc.col {
			t.Errorf("Parse %q: error at %v, want line %d, col %d", tc.input, serr.Location, tc.line, tc.col)
		}
		if !strings.Contains(err.Error(), tc.msg) {
			t.Errorf("Parse %q: error %q does not mention %q", tc.input, err, tc.msg)
		}
	}
}

func TestParseRangeError(t *testing.T) {
	_, err := jdoc.Parse([]byte(`[1.6e308]`))
	if !errors.Is(err, jdoc.ErrRange) {
		t.Errorf("Parse: got %v, want %v", err, jdoc.ErrRange)
	}
}

func TestParseReaderError(t *testing.T) {
	bad := errors.New("bad reader")
	_, err := jdoc.ParseReader(iotest.ErrReader(bad))
	if !errors.Is(err, bad) {
		t.Errorf("ParseReader: got %v, want %v", err, bad)
	}

	d, err := jdoc.ParseReader(strings.NewReader(testJSON))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if v, err := d.Root().Path("nested", "deep", "deeper", 1); err != nil || v.Kind() != jdoc.Object {
		t.Errorf("Path: got %v, %v; want empty object", v, err)
	}
}

func TestParseWithComments(t *testing.T) {
	const input = `{
  // A comment.
  "a": 1, /* another */
  "b": [1, 2,],
}`
	if _, err := jdoc.Parse([]byte(input)); err == nil {
		t.Error("Parse: got nil, want error for comments")
	}
	d, err := jdoc.ParseWith([]byte(input), jdoc.ParseOptions{AllowComments: true})
	if err != nil {
		t.Fatalf("ParseWith: %v", err)
	}
	if got, want := d.Root().JSON(), `{"a":1,"b":[1,2]}`; got != want {
		t.Errorf("JSON: got %q, want %q", got, want)
	}
	if _, err := jdoc.ParseWith([]byte(`{"a": /* open`), jdoc.ParseOptions{AllowComments: true}); err == nil {
		t.Error("ParseWith: got nil, want error for bad input")
	}
}

func TestRoundTrip(t *testing.T) {
	d := mustParse(t, testJSON)
	compact := d.Root().JSON()

	d2 := mustParse(t, compact)
	if got := d2.Root().JSON(); got != compact {
		t.Errorf("Round trip:\n got %s\nwant %s", got, compact)
	}
	d3 := mustParse(t, d.String())
	if got := d3.Root().JSON(); got != compact {
		t.Errorf("Pretty round trip:\n got %s\nwant %s", got, compact)
	}

	// Check the output against other JSON implementations.
	if !gjson.Valid(compact) {
		t.Errorf("gjson reports invalid output: %s", compact)
	}
	for path, want := range map[string]string{
		"name":       "sample",
		"tags.1":     "b\tc",
		"tags.2":     `d"e`,
		"rows.0.x":   "1",
		"rows.0.y.0": "1.5",
		"rows.#":     "2",
	} {
		if got := gjson.Get(compact, path); !got.Exists() || got.String() != want {
			t.Errorf("gjson.Get(%q): got %q, want %q", path, got.String(), want)
		}
	}
	if got := string(pretty.Ugly([]byte(d.String()))); got != compact {
		t.Errorf("Ugly(pretty):\n got %s\nwant %s", got, compact)
	}

	var want, got any
	if err := json.Unmarshal([]byte(testJSON), &want); err != nil {
		t.Fatalf("Unmarshal input: %v", err)
	}
	if err := gojson.Unmarshal([]byte(compact), &got); err != nil {
		t.Fatalf("Unmarshal output: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decoded output (-want, +got):\n%s", diff)
	}
}

func TestPretty(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`[1,2,3]`, `[1,2,3]`},
		{`[]`, `[]`},
		{`{}`, "{\n}"},
		{`[{"x":1}]`, "\n[\n\t{\n\t\t\"x\":1\n\t}\n]"},
		{`{"a":[1,"b"],"c":{"d":null}}`, "{\n\t\"a\":[1,\"b\"],\n\t\"c\":{\n\t\t\"d\":null\n\t}\n}"},
		{`{"a":[[1]]}`, "{\n\t\"a\":\n\t[\n\t\t[1]\n\t]\n}"},
	}
	for _, tc := range tests {
		d := mustParse(t, tc.input)
		var buf bytes.Buffer
		if err := d.WriteJSONPretty(&buf); err != nil {
			t.Errorf("WriteJSONPretty %q: %v", tc.input, err)
		} else if got := buf.String(); got != tc.want {
			t.Errorf("WriteJSONPretty %q:\n got %q\nwant %q", tc.input, got, tc.want)
		}
	}

	// A long array of scalars is not inlined.
	long := "[" + strings.Repeat("0,", 1023) + "0]"
	d := mustParse(t, long)
	if got := d.String(); !strings.HasPrefix(got, "\n[\n\t0,\n") {
		t.Errorf("Long array: got prefix %q", got[:min(len(got), 12)])
	}
	short := "[" + strings.Repeat("0,", 1022) + "0]"
	if got := mustParse(t, short).String(); got != short {
		t.Error("Array of 1023 items was not inlined")
	}
}

func TestWriteCpp(t *testing.T) {
	d := mustParse(t, `{"a":"x\"y","b\\":[1,2.5]}`)
	var buf bytes.Buffer
	if err := d.WriteJSONCpp(&buf); err != nil {
		t.Fatalf("WriteJSONCpp: %v", err)
	}
	want := `const char* g_rename_me = "{\"a\":\"x\\\"y\",\"b\\\\\":[1,2.50000000000000]}";` + "\n\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteJSONCpp:\n got %q\nwant %q", got, want)
	}

	// Long output is broken into lines by closing and reopening the literal.
	d = mustParse(t, "["+strings.Repeat("12345,", 199)+"12345]")
	buf.Reset()
	if err := d.WriteJSONCpp(&buf); err != nil {
		t.Fatalf("WriteJSONCpp: %v", err)
	}
	out := buf.String()
	if n := strings.Count(out, "\"\n\""); n < 4 {
		t.Errorf("Got %d line breaks, want at least 4", n)
	}
	for i, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if len(line) > 300 {
			t.Errorf("Line %d has length %d", i+1, len(line))
		}
	}
	body := strings.TrimSuffix(strings.TrimPrefix(out, `const char* g_rename_me = "`), "\";\n\n")
	if got, want := strings.ReplaceAll(body, "\"\n\"", ""), d.Root().JSON(); got != want {
		t.Errorf("Joined lines:\n got %s\nwant %s", got, want)
	}
}

func TestWriteXML(t *testing.T) {
	d := mustParse(t, `{"a":1,"b":"s","c":[1,{"d":null}],"e":{},"f":false}`)
	var buf bytes.Buffer
	if err := d.WriteXML(&buf); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	const want = `<?xml version="1.0" encoding="ISO-8859-1"?>` +
		`<root a="1" b="s" f="false"><c><i>1</i><i d="null" /></c><e /></root>`
	if got := buf.String(); got != want {
		t.Errorf("WriteXML:\n got %s\nwant %s", got, want)
	}

	buf.Reset()
	if err := mustParse(t, `2.5`).Root().WriteXML(&buf, "v"); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	if got, want := buf.String(), "<v>2.50000000000000</v>"; got != want {
		t.Errorf("WriteXML: got %q, want %q", got, want)
	}

	// String text is written verbatim.
	buf.Reset()
	if err := mustParse(t, `"a<b&c"`).Root().WriteXML(&buf, "v"); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	if got, want := buf.String(), "<v>a<b&c</v>"; got != want {
		t.Errorf("WriteXML: got %q, want %q", got, want)
	}
}

func TestBuild(t *testing.T) {
	d := jdoc.New()
	root := d.NewObject()
	if _, err := d.SetRoot(root); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	mustAdd := func(_ *jdoc.Node, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	mustAdd(root.AddField("s", d.NewString("hello")))
	mustAdd(root.AddField("b", d.NewStringBytes([]byte("bytes"))))
	arr, err := root.AddField("list", d.NewArray())
	if err != nil {
		t.Fatalf("AddField: %v", err)
	}
	mustAdd(arr.AddItem(d.NewInt(1)))
	mustAdd(arr.AddItem(d.NewBool(false)))
	mustAdd(arr.AddItem(d.NewNull()))
	dbl, err := d.NewDouble(0.5)
	if err != nil {
		t.Fatalf("NewDouble: %v", err)
	}
	mustAdd(arr.AddItem(dbl))

	const want = `{"s":"hello","b":"bytes","list":[1,false,null,0.50000000000000]}`
	var buf bytes.Buffer
	if err := d.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := buf.String(); got != want {
		t.Errorf("WriteJSON: got %q, want %q", got, want)
	}
	if got := d.Len(); got != 8 {
		t.Errorf("Len: got %d, want 8", got)
	}

	d.Clear()
	if d.Root() != nil || d.Len() != 0 {
		t.Errorf("After Clear: root=%v, len=%d", d.Root(), d.Len())
	}
	if err := d.WriteJSON(&buf); !errors.Is(err, jdoc.ErrNoRoot) {
		t.Errorf("WriteJSON empty: got %v, want %v", err, jdoc.ErrNoRoot)
	}
}

func TestBuildErrors(t *testing.T) {
	d, other := jdoc.New(), jdoc.New()

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), 1.6e308, -1.6e308} {
		if n, err := d.NewDouble(v); !errors.Is(err, jdoc.ErrRange) {
			t.Errorf("NewDouble(%v): got %v, %v; want %v", v, n, err, jdoc.ErrRange)
		}
	}

	if _, err := d.SetRoot(other.NewNull()); !errors.Is(err, jdoc.ErrForeignNode) {
		t.Errorf("SetRoot: got %v, want %v", err, jdoc.ErrForeignNode)
	}
	if _, err := d.NewArray().AddItem(other.NewNull()); !errors.Is(err, jdoc.ErrForeignNode) {
		t.Errorf("AddItem: got %v, want %v", err, jdoc.ErrForeignNode)
	}
	if _, err := d.NewObject().AddField("x", other.NewNull()); !errors.Is(err, jdoc.ErrForeignNode) {
		t.Errorf("AddField: got %v, want %v", err, jdoc.ErrForeignNode)
	}
	if _, err := d.NewArray().AddItem(nil); !errors.Is(err, jdoc.ErrNilNode) {
		t.Errorf("AddItem(nil): got %v, want %v", err, jdoc.ErrNilNode)
	}
	if _, err := d.NewObject().AddField("x", nil); !errors.Is(err, jdoc.ErrNilNode) {
		t.Errorf("AddField(nil): got %v, want %v", err, jdoc.ErrNilNode)
	}

	checkType := func(err error, want, got jdoc.Kind) {
		t.Helper()
		var terr *jdoc.TypeError
		if !errors.As(err, &terr) {
			t.Errorf("Got error %v, want *TypeError", err)
		} else if diff := cmp.Diff(jdoc.TypeError{Want: want, Got: got}, *terr); diff != "" {
			t.Errorf("TypeError (-want, +got):\n%s", diff)
		}
	}
	_, err := d.NewArray().AddField("x", d.NewNull())
	checkType(err, jdoc.Object, jdoc.Array)
	_, err = d.NewObject().AddItem(d.NewNull())
	checkType(err, jdoc.Array, jdoc.Object)
	_, err = d.NewInt(1).FieldIfExists("x")
	checkType(err, jdoc.Object, jdoc.Int)
	_, err = d.NewString("1").AsInt()
	checkType(err, jdoc.Int, jdoc.String)
	_, err = d.NewBool(true).AsDouble()
	checkType(err, jdoc.Double, jdoc.Bool)
	_, err = d.NewNull().AsString()
	checkType(err, jdoc.String, jdoc.Null)
	_, err = d.NewInt(0).AsBool()
	checkType(err, jdoc.Bool, jdoc.Int)
	_, err = jdoc.NewIterator(d.NewObject())
	checkType(err, jdoc.Array, jdoc.Object)

	if _, err := d.NewObject().Field("missing"); !errors.Is(err, jdoc.ErrNoField) {
		t.Errorf("Field: got %v, want %v", err, jdoc.ErrNoField)
	}
	if v, err := d.NewObject().FieldIfExists("missing"); v != nil || err != nil {
		t.Errorf("FieldIfExists: got %v, %v; want nil, nil", v, err)
	}

	var zero jdoc.Node
	mtest.MustPanic(t, func() { zero.JSON() })
}

func TestIterator(t *testing.T) {
	d := mustParse(t, `[10, 20, 30, [1, 2]]`)
	before := d.Root().JSON()

	it1, err := jdoc.NewIterator(d.Root())
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	it2, err := jdoc.NewIterator(d.Root())
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	if got := it1.Remaining(); got != 4 {
		t.Errorf("Remaining: got %d, want 4", got)
	}

	var got []string
	for ; it1.Remaining() > 0; it1.Advance() {
		got = append(got, it1.Current().JSON())

		// Nested and concurrent iterations do not disturb one another.
		it2.Advance()
		if cur := it1.Current(); cur.Kind() == jdoc.Array {
			inner, err := jdoc.NewIterator(cur)
			if err != nil {
				t.Fatalf("NewIterator: %v", err)
			}
			for ; inner.Remaining() > 0; inner.Advance() {
				got = append(got, "+"+inner.Current().JSON())
			}
		}
	}
	if diff := cmp.Diff([]string{"10", "20", "30", "[1,2]", "+1", "+2"}, got); diff != "" {
		t.Errorf("Iteration (-want, +got):\n%s", diff)
	}
	if it1.Current() != nil {
		t.Errorf("Current after end: got %v, want nil", it1.Current())
	}
	it1.Advance() // no effect
	if it1.Remaining() != 0 || it2.Remaining() != 0 {
		t.Errorf("Remaining after end: got %d, %d; want 0, 0", it1.Remaining(), it2.Remaining())
	}
	if after := d.Root().JSON(); after != before {
		t.Errorf("Document changed: got %s, want %s", after, before)
	}
}

func TestFields(t *testing.T) {
	d := mustParse(t, `{"a":1,"b":2,"a":3,"c":4}`)
	var names []string
	for name, v := range d.Root().Fields() {
		names = append(names, string(name)+"="+v.JSON())
		if name[0] == 'a' && len(names) > 1 {
			break
		}
	}
	if diff := cmp.Diff([]string{"a=1", "b=2", "a=3"}, names); diff != "" {
		t.Errorf("Fields (-want, +got):\n%s", diff)
	}
	for range jdoc.New().NewNull().Fields() {
		t.Error("Fields of a null node yielded a value")
	}
}

func TestCursor(t *testing.T) {
	d := mustParse(t, testJSON)
	root := d.Root()

	tests := []struct {
		path []any
		want string
		fail bool
	}{
		{nil, root.JSON(), false},
		{[]any{"name"}, `"sample"`, false},
		{[]any{"rows", 1, "x"}, `2`, false},
		{[]any{"rows", -2, "y", 0}, `1.50000000000000`, false},
		{[]any{2}, `0.25000000000000`, false},
		{[]any{-1, "deep"}, `{"deeper":[[],{}]}`, false},
		{[]any{"tags", func(n *jdoc.Node) (*jdoc.Node, error) {
			return n.Doc().NewInt(int64(n.Len())), nil
		}}, `3`, false},
		{[]any{"nonesuch"}, "", true},
		{[]any{"tags", 3}, "", true},
		{[]any{"tags", -4}, "", true},
		{[]any{"count", "x"}, "", true},
		{[]any{"count", 0}, "", true},
		{[]any{3.5}, "", true},
		{[]any{"ok", func(*jdoc.Node) (*jdoc.Node, error) { return nil, errors.New("no") }}, "", true},
		{[]any{func(*jdoc.Node) (*jdoc.Node, error) { return nil, nil }, "name"}, "", true},
	}
	for _, tc := range tests {
		got, err := root.Path(tc.path...)
		if tc.fail {
			if err == nil {
				t.Errorf("Path %v: got %v, want error", tc.path, got.JSON())
			}
			continue
		}
		if err != nil {
			t.Errorf("Path %v: unexpected error: %v", tc.path, err)
		} else if got.JSON() != tc.want {
			t.Errorf("Path %v: got %s, want %s", tc.path, got.JSON(), tc.want)
		}
	}

	c := jdoc.NewCursor(root).Down("rows", 0, "y")
	if c.Err() != nil {
		t.Fatalf("Down: %v", c.Err())
	}
	if got := len(c.Nodes()); got != 4 {
		t.Errorf("Nodes: got %d, want 4", got)
	}
	if got := c.Up().Value().JSON(); got != `{"x":1,"y":[1.50000000000000,-2]}` {
		t.Errorf("Up: got %s", got)
	}
	c.Reset()
	if !c.AtOrigin() || c.Value() != c.Origin() {
		t.Error("Reset did not return to origin")
	}
}

func TestLoadSave(t *testing.T) {
	d := mustParse(t, testJSON)
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := d.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	d2, err := jdoc.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := d2.Root().JSON(), d.Root().JSON(); got != want {
		t.Errorf("Loaded:\n got %s\nwant %s", got, want)
	}

	if _, err := jdoc.Load(filepath.Join(t.TempDir(), "nonesuch.json")); err == nil {
		t.Error("Load missing file: got nil, want error")
	}
	if err := d.Save(filepath.Join(t.TempDir(), "no", "such", "dir")); err == nil {
		t.Error("Save to missing directory: got nil, want error")
	}
}
