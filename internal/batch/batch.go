package batch

import (
	"context"
	"log"
	"math"

	"github.com/karupanerura/expression-tree-calculator/internal/expression"
	"github.com/karupanerura/expression-tree-calculator/internal/types"
	"golang.org/x/sync/errgroup"
)

type Batch struct {
	Entries []Entry
}

type Entry struct {
	Name       string
	Expression string
	Strict     bool
	Expect     *float64
}

type Outcome struct {
	Name       string             `json:"name"`
	Expression string             `json:"expression"`
	Postfix    string             `json:"postfix"`
	Result     *expression.Number `json:"result,omitempty"`
	Error      any                `json:"error,omitempty"`
	Matched    *bool              `json:"matched,omitempty"`
}

// Failed reports whether the entry could not be evaluated or
// did not match its expected value.
func (o *Outcome) Failed() bool {
	return o.Error != nil || (o.Matched != nil && !*o.Matched)
}

const expectTolerance = 1e-9

// Run evaluates every entry, at most parallelism at a time, and returns the
// outcomes in entry order. A failing entry does not stop the others.
func (b *Batch) Run(ctx context.Context, calc expression.Calculator, parallelism int) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(b.Entries))

	eg, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		eg.SetLimit(parallelism)
	}
	for i, entry := range b.Entries {
		i := i
		entry := entry
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c := calc
			c.Strict = c.Strict || entry.Strict
			outcomes[i] = entry.evaluate(&c)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (e *Entry) evaluate(calc *expression.Calculator) (o *Outcome) {
	o = &Outcome{Name: e.Name, Expression: e.Expression}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s: recovered from panic: %v", e.Name, r)
			o.Error = types.NewSystemError(r).Exception()
		}
	}()

	ret, err := calc.Calculate(e.Expression)
	o.Postfix = ret.PostfixString()
	if err != nil {
		o.Error = types.ExceptionOf(err)
		return o
	}

	o.Result = &ret.Value
	if e.Expect != nil {
		matched := math.Abs(ret.Value.Float64()-*e.Expect) <= expectTolerance*math.Max(1, math.Abs(*e.Expect))
		o.Matched = &matched
	}
	return o
}
