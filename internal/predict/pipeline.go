package predict

import (
	"context"

	"github.com/f3rmion/churn/internal/churn"
	"github.com/f3rmion/churn/internal/logger"
)

// Predictor returns a label for an encoded record.
type Predictor interface {
	Predict(ctx context.Context, features churn.FeatureVector) (churn.Label, error)
}

// Pipeline turns a record into an outcome through a Predictor.
type Pipeline struct {
	predictor Predictor
	log       *logger.Logger
}

// NewPipeline creates a pipeline. A nil logger discards.
func NewPipeline(p Predictor, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{predictor: p, log: log}
}

// Run encodes r, asks the predictor once and builds the outcome.
// Errors are returned as is; nothing is retried.
func (p *Pipeline) Run(ctx context.Context, r churn.FormRecord) (churn.Outcome, error) {
	label, err := p.predictor.Predict(ctx, churn.Encode(r))
	if err != nil {
		p.log.Warn("prediction failed", "error", err)
		return churn.Outcome{}, err
	}

	out := churn.OutcomeFor(r, label)
	p.log.Info("prediction complete", "label", out.Label)
	return out, nil
}
