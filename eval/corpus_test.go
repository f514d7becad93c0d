package eval

import (
	"bytes"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// corpusCase is one fixture from testdata/corpus.yaml: a whole program
// plus either its expected stdout or the label of its expected failure.
type corpusCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

func TestCorpus(t *testing.T) {
	raw, err := os.ReadFile("testdata/corpus.yaml")
	if err != nil {
		t.Fatalf("cannot read corpus: %v", err)
	}
	var cases []corpusCase
	if err := yaml.Unmarshal(raw, &cases); err != nil {
		t.Fatalf("cannot parse corpus: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("empty corpus")
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			var out bytes.Buffer
			ctx := NewContext(&out)
			Install(ctx)
			_, rerr := ctx.Execute(testParse(t, tc.Source))
			if tc.Error != "" {
				if rerr == nil {
					t.Fatalf("expected a %q failure, program succeeded with output %q",
						tc.Error, out.String())
				}
				if got := rerr.Kind.label(); got != tc.Error {
					t.Fatalf("expected a %q failure, got %q: %s", tc.Error, got, rerr)
				}
				return
			}
			if rerr != nil {
				t.Fatalf("unexpected error: %s", rerr)
			}
			if diff := cmp.Diff(tc.Output, out.String()); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
