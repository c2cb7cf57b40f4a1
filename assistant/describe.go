package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/DachengChen/askSQL/ai"
)

const keyHint = "This often means there's an issue with your API key or the model name. " +
	"Please check that the key is valid and has the Generative Language API enabled."

// Describe turns an error from Ask (or from provider setup) into the
// message shown to the user plus an optional hint line.
func Describe(err error) (title, hint string) {
	if err == nil {
		return "", ""
	}

	var step *StepError
	if errors.As(err, &step) && step.Stage == StageExecute {
		return fmt.Sprintf("Database error: %v", step.Err),
			"No records found or an error occurred during execution."
	}

	inner := err
	if step != nil {
		inner = step.Err
	}

	var blocked *ai.BlockedError
	var apiErr *ai.APIError

	switch {
	case errors.Is(err, ErrEmptyQuestion):
		return "Please enter a question first!", ""

	case errors.Is(err, ai.ErrMissingCredential):
		return "API key not found.", inner.Error()

	case errors.Is(err, ai.ErrRateLimited):
		return "API Rate Limit Exceeded. You have made too many requests to the model API.",
			"Please wait a while before trying again or check your billing plan."

	case errors.As(err, &blocked):
		return "The API returned an empty response. This might be due to safety filters blocking the content.",
			"Prompt feedback: " + blocked.Reason

	case errors.Is(err, ai.ErrEmptyCompletion):
		return "The API returned an empty response. This might be due to safety filters blocking the content.", ""

	case errors.Is(err, ai.ErrAuth), errors.As(err, &apiErr):
		return fmt.Sprintf("API Call Error: %v", inner), keyHint

	case errors.Is(err, context.DeadlineExceeded):
		return "The model did not answer in time.", "Try again, or raise timeout_seconds in the config file."

	case errors.Is(err, context.Canceled):
		return "Request cancelled.", ""

	default:
		return fmt.Sprintf("An unexpected error occurred: %v", inner), ""
	}
}
