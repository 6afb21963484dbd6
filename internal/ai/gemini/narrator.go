package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/ai"
	"github.com/spigell/hire-matcher/internal/logger"
	"github.com/spigell/hire-matcher/internal/utils"
)

const (
	providerName = "gemini"

	defaultMaxLogLength = 200
	maxFieldRunes       = 200
	maxListItems        = 10
	notSet              = "Not set"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

var (
	//go:embed prompts/system.md
	systemPrompt string
	//go:embed prompts/recommendations.md
	recommendationsPrompt string
	//go:embed prompts/career.md
	careerPrompt string
	//go:embed prompts/hiring.md
	hiringPrompt string
)

// Narrator writes match insights with a Gemini generator.
type Narrator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewNarrator(generator contentGenerator, maxLogLength int, log *zap.Logger) *Narrator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Narrator{
		generator: generator,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (n *Narrator) Narrate(ctx context.Context, req ai.InsightRequest) (string, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return "", err
	}

	n.logger.Debug("gemini narrate request",
		zap.String("audience", string(req.Audience)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, n.maxLogLen)),
	)

	raw, err := n.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return "", err
	}

	n.logger.Debug("gemini narrate response",
		zap.String("audience", string(req.Audience)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, n.maxLogLen)),
	)

	return cleanResponse(raw), nil
}

func buildPrompt(req ai.InsightRequest) (string, error) {
	var template string
	switch req.Audience {
	case ai.AudienceRecommendations:
		template = recommendationsPrompt
	case ai.AudienceCareer:
		template = careerPrompt
	case ai.AudienceHiring:
		template = hiringPrompt
	default:
		return "", fmt.Errorf("unsupported insight audience %q", req.Audience)
	}

	replacer := strings.NewReplacer(
		"{{NAME}}", orDefault(sanitizeLine(req.Name), "Unknown"),
		"{{COMPANY}}", orDefault(sanitizeLine(req.Company), "Unknown"),
		"{{EXPERIENCE}}", orDefault(sanitizeLine(req.ExperienceLevel), notSet),
		"{{SKILLS}}", joinList(req.Skills),
		"{{CAREER_GOALS}}", joinList(req.CareerGoals),
		"{{WORK_TYPES}}", joinList(req.WorkTypes),
		"{{TOP_MATCHES}}", formatMatches(req.TopMatches),
		"{{ACTIVE_JOBS}}", strconv.Itoa(req.ActiveJobs),
	)

	return strings.TrimSpace(replacer.Replace(template)), nil
}

func formatMatches(matches []ai.MatchSummary) string {
	if len(matches) == 0 {
		return "none"
	}

	lines := make([]string, 0, len(matches))
	for i, m := range matches {
		lines = append(lines, fmt.Sprintf("%d. %s at %s (%d%% match)", i+1, sanitizeLine(m.Title), sanitizeLine(m.Company), m.Score))
	}
	return strings.Join(lines, "\n")
}

func joinList(values []string) string {
	cleaned := make([]string, 0, min(len(values), maxListItems))
	for _, v := range values {
		if len(cleaned) == maxListItems {
			break
		}
		if v = sanitizeLine(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return notSet
	}
	return strings.Join(cleaned, ", ")
}

// sanitizeLine collapses user-provided text to a single bounded line. Square brackets are
// swapped for parentheses so values cannot open new prompt sections.
func sanitizeLine(v string) string {
	v = strings.NewReplacer("[", "(", "]", ")", "{{", "(", "}}", ")").Replace(v)
	v = strings.Join(strings.Fields(v), " ")

	runes := []rune(v)
	if len(runes) > maxFieldRunes {
		v = strings.TrimSpace(string(runes[:maxFieldRunes]))
	}
	return v
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func cleanResponse(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```text")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
