package generate

import (
	llm "github.com/randalmurphal/llmkit/claude"
	"github.com/randalmurphal/llmkit/model"
)

// Task identifies the kind of generation work, which determines the
// model tier.
type Task string

const (
	// Research gathers and summarizes sources - fast tier is enough.
	Research Task = "research"

	// Write produces the full article - default tier.
	Write Task = "write"
)

// DefaultModelMap maps generation tasks to default models.
var DefaultModelMap = map[Task]model.ModelName{
	Research: model.ModelHaiku,
	Write:    model.ModelSonnet,
}

// TierForTask returns the appropriate model tier for a task.
func TierForTask(t Task) model.Tier {
	if t == Research {
		return model.TierFast
	}
	return model.TierDefault
}

// SelectModel selects the model for a task, falling back to tier-based
// selection for unknown tasks.
func SelectModel(t Task) model.ModelName {
	if m, ok := DefaultModelMap[t]; ok {
		return m
	}
	if TierForTask(t) == model.TierFast {
		return model.ModelHaiku
	}
	return model.ModelSonnet
}

// NewDefaultClient creates an llm.Client backed by the claude CLI,
// configured for non-interactive pipeline use.
func NewDefaultClient(modelName model.ModelName, workdir string) llm.Client {
	return llm.NewClaudeCLI(
		llm.WithModel(string(modelName)),
		llm.WithWorkdir(workdir),
		llm.WithDangerouslySkipPermissions(),
	)
}
