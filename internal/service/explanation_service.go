package service

import (
	"context"
	"fmt"
	"math_quiz_backend/internal/llm"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/util"
	"math_quiz_backend/pkg/logger"
	"math_quiz_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ExplanationService 答错后的 AI 解析。提供商在启动时按优先级选定一次；
// 失败或未配置都只影响解析本身，答题流程照常推进
type ExplanationService struct {
	catalog  ProblemCatalog
	provider llm.Provider
}

func NewExplanationService(catalog ProblemCatalog, provider llm.Provider) *ExplanationService {
	return &ExplanationService{
		catalog:  catalog,
		provider: provider,
	}
}

// Generate 为某道题的某次作答生成讲解。attempt 1 为首次讲解，
// >=2 时要求提供商给出更简单的分步版本
func (s *ExplanationService) Generate(ctx context.Context, problemID, selectedOptionID uint, attempt int) (string, error) {
	if s.provider == nil {
		return "", util.ErrExplanationUnavailable
	}
	if attempt < 1 {
		attempt = 1
	}

	problem, err := s.catalog.FetchByID(problemID)
	if err != nil {
		return "", util.ErrExplanationUnavailable
	}

	correct := problem.CorrectOption()
	selected := problem.FindOption(selectedOptionID)
	if correct == nil || selected == nil {
		return "", util.ErrExplanationUnavailable
	}

	prompt := buildExplanationPrompt(problem, correct, selected, attempt)

	text, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		logger.Log.Error("explanation generation failed",
			zap.String("provider", s.provider.Name()),
			zap.Uint("problemId", problemID),
			zap.Error(err))
		monitoring.ExplanationCounter.WithLabelValues(s.provider.Name(), "error").Inc()
		return "", util.ErrExplanationUnavailable
	}

	monitoring.ExplanationCounter.WithLabelValues(s.provider.Name(), "ok").Inc()
	return text, nil
}

func buildExplanationPrompt(problem *model.Problem, correct, selected *model.AnswerOption, attempt int) string {
	task := fmt.Sprintf("Vysvětli žákovi, proč je správná odpověď %s, a kde udělal chybu.", correct.OptionLetter)
	simpler := ""
	if attempt > 1 {
		task = "Žák stále nechápe. Vysvětli to JEŠTĚ JEDNODUŠEJI, krok za krokem, jako by měl 12 let."
		simpler = "\n- Použij MAXIMÁLNĚ JEDNODUCHÉ VYSVĚTLENÍ, jako pro malé dítě"
	}

	return fmt.Sprintf(`Jsi pomocný učitel matematiky pro žáky připravující se na přijímací zkoušky.

**ZADÁNÍ:**
%s

**SPRÁVNÁ ODPOVĚĎ:** %s) %s
**ŽÁK ODPOVĚDĚL:** %s) %s

**ÚKOL:**
%s

**STYL VYSVĚTLENÍ:**
- Piš v češtině, přátelsky, jako kamarád
- Používej jednoduché příklady
- Rozděl vysvětlení na kroky
- Používej emojis pro zpříjemnění (✅, 💡, ⚠️)%s

**FORMÁT ODPOVĚDI:**
1. Krátké shrnutí (1 věta)
2. Krok za krokem řešení
3. Vysvětlení chyby žáka
4. Tip, jak se chybě příště vyhnout

Odpověď:`,
		problem.QuestionText,
		correct.OptionLetter, correct.AnswerText,
		selected.OptionLetter, selected.AnswerText,
		task, simpler)
}
