package processor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nimblehire/sift/internal/candidate"
	"github.com/nimblehire/sift/internal/parser"
)

// ModelClient generates one text completion from the given prompt parts.
type ModelClient interface {
	Generate(ctx context.Context, parts ...string) (string, error)
}

// Processor turns one CV document into a structured candidate. It never
// retries; retry policy belongs to the caller.
type Processor struct {
	model  ModelClient
	logger *slog.Logger
}

func New(model ModelClient, logger *slog.Logger) *Processor {
	return &Processor{model: model, logger: logger}
}

// Process analyzes one document. On failure it returns a classified Failure
// rather than the raw error; every underlying cause maps to some Kind.
func (p *Processor) Process(ctx context.Context, data []byte, fileName string) (*candidate.Candidate, []string, *Failure) {
	prompt := fmt.Sprintf(extractionUserPrompt, fileName, string(data))

	resp, err := p.model.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		f := Classify(err)
		p.logger.Error("model call failed",
			"file", fileName,
			"kind", f.Kind,
			"error", f.Detail)
		return nil, nil, f
	}

	rec, err := parser.Parse(resp)
	if err != nil {
		f := Classify(err)
		p.logger.Error("response unparseable",
			"file", fileName,
			"kind", f.Kind,
			"response_length", len(resp))
		return nil, nil, f
	}

	warns := parser.Warnings(rec)
	for _, w := range warns {
		p.logger.Warn("validation warning", "file", fileName, "warning", w)
	}

	c := parser.Normalize(rec, fileName)
	p.logger.Info("candidate extracted",
		"file", fileName,
		"name", c.Name,
		"score", c.Score,
		"skills", len(c.Skills),
		"warnings", len(warns))
	return c, warns, nil
}
