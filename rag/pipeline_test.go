package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type countingGenerator struct {
	calls  int
	text   string
	err    error
	window int
}

func (g *countingGenerator) Generate(ctx context.Context, prompt string, stop []string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *countingGenerator) ContextWindow() int {
	if g.window > 0 {
		return g.window
	}
	return 2048
}

type stubExtractor struct {
	text string
	err  error
}

func (e *stubExtractor) Extract(ctx context.Context, path string, maxChars int) (string, error) {
	return e.text, e.err
}

func newTestPipeline(store Store, gen Generator, ex DocumentExtractor) *Pipeline {
	return NewPipeline(&fixedEmbedder{}, store, gen, ex, Config{})
}

func TestQueryRAGAnswered(t *testing.T) {
	store := &fakeStore{
		order: []string{SourceMed},
		hits: map[string][]Hit{
			SourceMed: {{Text: "Metformin: used to treat type 2 diabetes.", Distance: 0.2}},
		},
	}
	gen := &countingGenerator{text: "Metformin is used to treat type 2 diabetes"}
	p := newTestPipeline(store, gen, nil)

	got := p.QueryRAG(context.Background(), "What is Metformin used for?", "")
	if gen.calls != 1 {
		t.Fatalf("generation called %d times, want 1", gen.calls)
	}
	if !strings.Contains(got, "diabetes") {
		t.Fatalf("answer should mention diabetes: %q", got)
	}
	if !strings.HasSuffix(got, ".") {
		t.Fatalf("answer should be terminated: %q", got)
	}
}

func TestQueryRAGNoContext(t *testing.T) {
	store := &fakeStore{order: []string{SourceMed}}
	gen := &countingGenerator{text: "should never be used"}
	p := newTestPipeline(store, gen, nil)

	if got := p.QueryRAG(context.Background(), "What is Xyzzyol?", ""); got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}
	if gen.calls != 0 {
		t.Fatalf("generation invoked without context")
	}
}

func TestQueryRAGAuthorityBlocksBeforeGeneration(t *testing.T) {
	store := &fakeStore{
		order: []string{SourceRem},
		hits: map[string][]Hit{
			SourceRem: {{Text: "Ginger tea soothes the stomach.", Distance: 0.05}},
		},
	}
	gen := &countingGenerator{text: "should never be used"}
	p := newTestPipeline(store, gen, nil)

	got := p.QueryRAG(context.Background(), "How much Metformin should I give to a child?", "")
	if got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}
	if gen.calls != 0 {
		t.Fatalf("generation must not run when the gate blocks, ran %d times", gen.calls)
	}
}

func TestQueryRAGAuthorityAllowsWithMedSource(t *testing.T) {
	store := &fakeStore{
		order: []string{SourceMed},
		hits: map[string][]Hit{
			SourceMed: {{Text: "Metformin 500mg, adults only.", Distance: 0.1}},
		},
	}
	gen := &countingGenerator{text: "Refer to the prescribing information"}
	p := newTestPipeline(store, gen, nil)

	got := p.QueryRAG(context.Background(), "What dose of Metformin should I take?", "")
	if got == Fallback {
		t.Fatalf("authoritative grounding present, should answer")
	}
	if gen.calls != 1 {
		t.Fatalf("generation called %d times, want 1", gen.calls)
	}
}

func TestQueryRAGGenerationFailure(t *testing.T) {
	store := &fakeStore{
		order: []string{SourceMed},
		hits: map[string][]Hit{
			SourceMed: {{Text: "Metformin: used to treat type 2 diabetes.", Distance: 0.2}},
		},
	}
	gen := &countingGenerator{err: errors.New("all strategies failed")}
	p := newTestPipeline(store, gen, nil)

	if got := p.QueryRAG(context.Background(), "What is Metformin used for?", ""); got != Apology {
		t.Fatalf("expected apology, got %q", got)
	}
}

func TestQueryRAGExtractionFailureDegrades(t *testing.T) {
	store := &fakeStore{
		order: []string{SourceMed},
		hits: map[string][]Hit{
			SourceMed: {{Text: "Metformin: used to treat type 2 diabetes.", Distance: 0.2}},
		},
	}
	gen := &countingGenerator{text: "It treats diabetes"}
	p := newTestPipeline(store, gen, &stubExtractor{err: errors.New("unreadable pdf")})

	got := p.QueryRAG(context.Background(), "What is Metformin used for?", "report.pdf")
	if got == Fallback || got == Apology {
		t.Fatalf("extraction failure must not abort the pipeline, got %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("generation called %d times, want 1", gen.calls)
	}
}

func TestQueryRAGDocumentOnlyGrounding(t *testing.T) {
	store := &fakeStore{order: []string{SourceMed}}
	gen := &countingGenerator{text: "The report shows normal hemoglobin"}
	p := newTestPipeline(store, gen, &stubExtractor{text: "Hemoglobin 14.1 g/dL within normal range"})

	got := p.QueryRAG(context.Background(), "What does my report say?", "report.pdf")
	if got == Fallback {
		t.Fatalf("extracted document alone should be enough grounding")
	}
	if gen.calls != 1 {
		t.Fatalf("generation called %d times, want 1", gen.calls)
	}
}
