// Package assistant runs the query flow once: question → prompt →
// completion → SQL → rows.
//
// Each call is synchronous and makes at most one model request and one
// database execution. Every failure is terminal for that call; nothing is
// retried. The caller gets a *StepError saying which stage failed.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DachengChen/askSQL/ai"
	"github.com/DachengChen/askSQL/applog"
	"github.com/DachengChen/askSQL/db"
)

// ErrEmptyQuestion is returned when there is nothing to ask.
var ErrEmptyQuestion = errors.New("please enter a question first")

// Stage names the step of the flow that failed.
type Stage string

const (
	StageGenerate Stage = "generate"
	StageExtract  Stage = "extract"
	StageExecute  Stage = "execute"
)

// StepError wraps a failure with the stage it happened in.
type StepError struct {
	Stage Stage
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Executor runs a SQL statement. *db.Store satisfies it.
type Executor interface {
	Execute(ctx context.Context, sql string) (*db.QueryResult, error)
}

// Answer is everything produced for one question.
type Answer struct {
	Question   string
	Completion string
	SQL        string
	Result     *db.QueryResult
	Duration   time.Duration
}

// Assistant ties a model provider to the student database.
type Assistant struct {
	provider ai.Provider
	store    Executor
	timeout  time.Duration
}

// New returns an Assistant. A zero timeout means the model call is bounded
// only by ctx.
func New(provider ai.Provider, store Executor, timeout time.Duration) *Assistant {
	return &Assistant{provider: provider, store: store, timeout: timeout}
}

// ProviderName returns the display name of the model backend.
func (a *Assistant) ProviderName() string {
	return a.provider.Name()
}

// Ask translates question into SQL and executes it.
//
// On a generate or extract failure the returned Answer is nil and nothing
// is executed. On an execute failure the Answer is still returned, with
// the SQL that failed and no Result.
func (a *Assistant) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	start := time.Now()
	applog.Info("question received", "provider", a.provider.Name(), "question", question)

	completion, err := a.generate(ctx, question)
	if err != nil {
		applog.Error("generation failed", "err", err)
		ai.LogResponse(completion, "", err)
		return nil, &StepError{Stage: StageGenerate, Err: err}
	}

	sql := ai.ExtractSQL(completion)
	ai.LogResponse(completion, sql, nil)
	if strings.TrimSpace(sql) == "" {
		applog.Warn("completion contained no SQL", "completion", completion)
		return nil, &StepError{Stage: StageExtract, Err: ai.ErrEmptyCompletion}
	}

	ans := &Answer{Question: question, Completion: completion, SQL: sql}

	result, err := a.store.Execute(ctx, sql)
	ans.Duration = time.Since(start)
	if err != nil {
		applog.Error("execution failed", "sql", sql, "err", err)
		return ans, &StepError{Stage: StageExecute, Err: err}
	}

	ans.Result = result
	applog.Info("query executed", "sql", sql, "rows", result.RowCount, "duration", ans.Duration)
	return ans, nil
}

func (a *Assistant) generate(ctx context.Context, question string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	ai.LogRequest(a.provider.Name(), ai.SQLPrompt, question)
	return a.provider.Complete(ctx, ai.SQLPrompt, question)
}
