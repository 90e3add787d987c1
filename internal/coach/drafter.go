// Package coach drafts coach messages from a member's recent activity with a
// language model.
package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"

	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/services"
)

var (
	ErrDraftUnavailable = errors.New("coach drafting is not configured")
	ErrEmptyDraft       = errors.New("model returned an empty draft")
)

const (
	recentWorkoutLimit = 7
	recentMealDayLimit = 3
	historyWindow      = 3
	contextInputKey    = "Context"
)

const draftPrompt = `
You are a friendly personal trainer writing a short note to one of your members.
Use the activity below to write the note:

{{.Context}}

Guidelines:
1. Mention completed and missed sessions without judging.
2. Comment on the calorie trend if meals were logged.
3. Suggest one concrete focus for the coming days.
4. Keep it under 120 words, plain text, no markdown.
5. Do not repeat advice already given in earlier notes.
`

// Activity is the slice of a member's data a draft is based on.
type Activity struct {
	Member   string
	Workouts []models.WorkoutEvent
	MealDays []services.MealDay
}

type Drafter struct {
	chain *chains.LLMChain

	mu      sync.Mutex
	history map[string]*memory.ConversationWindowBuffer
}

// NewOpenAIModel builds an OpenAI-compatible client, e.g. for OpenRouter.
func NewOpenAIModel(baseURL string, token string, model string) (llms.Model, error) {
	options := []openai.Option{openai.WithToken(token)}
	if strings.TrimSpace(baseURL) != "" {
		options = append(options, openai.WithBaseURL(baseURL))
	}
	if strings.TrimSpace(model) != "" {
		options = append(options, openai.WithModel(model))
	}
	return openai.New(options...)
}

func NewDrafter(model llms.Model) *Drafter {
	return &Drafter{
		chain:   chains.NewLLMChain(model, prompts.NewPromptTemplate(draftPrompt, []string{contextInputKey})),
		history: map[string]*memory.ConversationWindowBuffer{},
	}
}

// Draft writes a message for the member identified by userID. Earlier drafts
// for the same member are fed back so advice does not repeat.
func (drafter *Drafter) Draft(ctx context.Context, userID string, activity Activity) (string, error) {
	if drafter == nil || drafter.chain == nil {
		return "", ErrDraftUnavailable
	}

	buffer := drafter.memoryFor(userID)
	previous, err := buffer.LoadMemoryVariables(ctx, map[string]any{})
	if err != nil {
		return "", fmt.Errorf("loading draft history: %w", err)
	}

	input := map[string]any{
		contextInputKey: fmt.Sprintf("%s\nEarlier notes: %v", DescribeActivity(activity), previous["history"]),
	}
	result, err := chains.Call(ctx, drafter.chain, input)
	if err != nil {
		return "", fmt.Errorf("calling chain: %w", err)
	}

	text, _ := result[drafter.chain.OutputKey].(string)
	text = cleanDraft(text)
	if text == "" {
		return "", ErrEmptyDraft
	}

	if err := buffer.SaveContext(ctx, input, map[string]any{drafter.chain.OutputKey: text}); err != nil {
		return "", fmt.Errorf("saving draft history: %w", err)
	}
	return text, nil
}

func (drafter *Drafter) memoryFor(userID string) *memory.ConversationWindowBuffer {
	drafter.mu.Lock()
	defer drafter.mu.Unlock()

	buffer, ok := drafter.history[userID]
	if !ok {
		buffer = memory.NewConversationWindowBuffer(historyWindow)
		drafter.history[userID] = buffer
	}
	return buffer
}

// DescribeActivity renders the newest workouts and meal days as plain lines
// for the prompt.
func DescribeActivity(activity Activity) string {
	var builder strings.Builder
	member := strings.TrimSpace(activity.Member)
	if member == "" {
		member = "the member"
	}
	fmt.Fprintf(&builder, "Member: %s\n", member)

	builder.WriteString("Workouts:\n")
	if len(activity.Workouts) == 0 {
		builder.WriteString("- none scheduled\n")
	}
	for index, event := range activity.Workouts {
		if index == recentWorkoutLimit {
			break
		}
		status := "missed"
		if event.Completed {
			status = "completed"
		}
		fmt.Fprintf(&builder, "- %s %s %d min (%s)", event.Date.Format("2006-01-02"), event.Type, event.DurationMinutes, status)
		if event.Record != nil && event.Record.WeightKg > 0 {
			fmt.Fprintf(&builder, ", weight %.1f kg", event.Record.WeightKg)
		}
		builder.WriteString("\n")
	}

	builder.WriteString("Meals:\n")
	if len(activity.MealDays) == 0 {
		builder.WriteString("- none logged\n")
	}
	for index, day := range activity.MealDays {
		if index == recentMealDayLimit {
			break
		}
		fmt.Fprintf(&builder, "- %s: %d meals, about %.0f kcal\n", day.Date, len(day.Meals), day.TotalCalories)
	}
	return builder.String()
}

func cleanDraft(raw string) string {
	text := strings.ReplaceAll(raw, "```text", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
