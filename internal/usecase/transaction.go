package usecase

import (
	"context"
	"fmt"
	"log"
)

// Transaction runs operations in order. When one fails, the compensations of
// the operations already executed run in reverse order.
type Transaction struct {
	operations    []Operation
	compensations []Compensation
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{
		operations:    []Operation{},
		compensations: []Compensation{},
	}
}

// Step registers an operation with its compensation (which may be nil).
func (t *Transaction) Step(name string, fn, compensate func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, fn})
	t.compensations = append(t.compensations, Compensation{name, compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("opération '%s' échouée (%d annulée(s)): %w", op.Name, i, err)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		comp := t.compensations[i]
		if comp.Fn == nil {
			continue
		}
		if err := comp.Fn(ctx); err != nil {
			log.Printf("⚠️ [TX] Compensation '%s' échouée: %v (risque d'incohérence)", comp.Name, err)
		}
	}
}
