package translate

import (
	"sort"
	"testing"
)

func FuzzTranslate(f *testing.F) {
	seeds := []string{
		"",
		"[a]\nx = 1\n",
		"def A := .{B}.\ndef B := .{A}.\n[s]\nk = .{A}.",
		"[s]\nk = #(1, $[ a: \"x\\n\" ], .{C}.)",
		"[s]\nk = \"unterminated\n[t]\nj = @",
		"def := ;\n[\n]]\n$[ #( .{ }.",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		res := Run(src, Options{Interpolate: true})
		if !sort.IsSorted(res.Diagnostics) {
			t.Fatalf("diagnostics not sorted: %v", res.Diagnostics)
		}
		if res.Diagnostics.HasErrors() && res.Output != "" {
			t.Fatalf("output produced despite %d errors", len(res.Diagnostics))
		}
		if res.Document == nil {
			t.Fatal("nil document")
		}
	})
}
