package document

import (
	"fmt"
	"strings"
	"testing"
)

func TestYAMLDecoder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  []string
	}{
		{
			name:  "scalars",
			input: "s: text\ni: 42\nh: 0x1F\nf: 1.5\nw: 2.0\nb: true\nn: ~\nq: \"007\"\n",
			want:  []string{`{"s":"text","i":42,"h":31,"f":1.5,"w":2.0,"b":true,"n":null,"q":"007"}`},
		},
		{
			name:  "special floats",
			input: "[.inf, -.inf, .nan]",
			want:  []string{`[null,null,null]`},
		},
		{
			name:  "big integer",
			input: "n: !!int 18446744073709551616\n",
			want:  []string{`{"n":18446744073709551616}`},
		},
		{
			name:  "sorted keys",
			input: "b: 1\na:\n  d: 2\n  c: 3\n",
			opts:  Options{SortKeys: true},
			want:  []string{`{"a":{"c":3,"d":2},"b":1}`},
		},
		{
			name:  "scalar keys",
			input: "1: one\ntrue: yes\n~: nothing\n",
			want:  []string{`{"1":"one","true":"yes","null":"nothing"}`},
		},
		{
			name:  "aliases",
			input: "base: &b [1, 2]\ncopy: *b\n",
			want:  []string{`{"base":[1,2],"copy":[1,2]}`},
		},
		{
			name:  "merge keys",
			input: "base: &b\n  x: 1\n  y: 2\nderived:\n  <<: *b\n  y: 3\n  z: 4\n",
			want:  []string{`{"base":{"x":1,"y":2},"derived":{"x":1,"y":3,"z":4}}`},
		},
		{
			name:  "explicit key before merge wins",
			input: "a: &a {x: 1, y: 2}\nb: {y: 9, <<: *a}\n",
			want:  []string{`{"a":{"x":1,"y":2},"b":{"y":9,"x":1}}`},
		},
		{
			name:  "merge sequence",
			input: "p: &p {x: 1}\nq: &q {x: 2, y: 2}\nr:\n  <<: [*p, *q]\n",
			want:  []string{`{"p":{"x":1},"q":{"x":2,"y":2},"r":{"x":1,"y":2}}`},
		},
		{
			name:  "multiple documents",
			input: "a: 1\n---\n- b\n",
			want:  []string{`{"a":1}`, `["b"]`},
		},
		{
			name:  "empty stream",
			input: "",
			want:  []string{`null`},
		},
		{
			name:  "json is yaml",
			input: `{"k": [1, "two", null]}`,
			want:  []string{`{"k":[1,"two",null]}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAll(t, tt.input, FormatYAML, tt.opts)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYAMLDecoderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"complex key", "? [a, b]\n: 1\n"},
		{"unclosed flow sequence", "a: [1, 2\n"},
		{"merge of scalar", "a:\n  <<: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := NewDecoder(strings.NewReader(tt.input), FormatYAML, "", Options{})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := dec.Decode(); err == nil {
				t.Error("Decode() error = nil, want an error")
			}
		})
	}
}

// nestedAliases builds a document whose anchors each reference the previous
// one ten times, so it expands to 10^levels scalars.
func nestedAliases(levels int) string {
	var sb strings.Builder
	sb.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i < levels; i++ {
		ref := fmt.Sprintf("*l%d", i-1)
		fmt.Fprintf(&sb, "l%d: &l%d [%s]\n", i, i, strings.TrimSuffix(strings.Repeat(ref+", ", 10), ", "))
	}
	return sb.String()
}

func TestYAMLDecoderAliasExpansion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"shallow nesting", nestedAliases(2), false},
		{"exponential expansion", nestedAliases(8), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := NewDecoder(strings.NewReader(tt.input), FormatYAML, "", Options{})
			if err != nil {
				t.Fatal(err)
			}
			_, err = dec.Decode()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), "excessive aliasing") {
				t.Errorf("Decode() error = %v, want excessive aliasing", err)
			}
		})
	}
}
