// 手动导入题库脚本
//
// 从 JSON 文件批量导入题目及选项，用于首次部署或补充新一年的真题。
// 每道题要求恰好一个正确选项，不满足的条目会被跳过并记录。
//
// 用法: go run scripts/seed_problems.go -file data/problems.json

package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/internal/service"
	"math_quiz_backend/pkg/database"
	"math_quiz_backend/pkg/logger"
)

type seedOption struct {
	OptionLetter   string `json:"optionLetter"`
	AnswerText     string `json:"answerText"`
	AnswerImageURL string `json:"answerImageUrl"`
	IsCorrect      bool   `json:"isCorrect"`
}

type seedProblem struct {
	TopicCode        string       `json:"topicCode"`
	Title            string       `json:"title"`
	QuestionText     string       `json:"questionText"`
	QuestionImageURL string       `json:"questionImageUrl"`
	DifficultyLevel  string       `json:"difficultyLevel"`
	Year             int          `json:"year"`
	ProblemNumber    int          `json:"problemNumber"`
	Options          []seedOption `json:"options"`
}

func main() {
	file := flag.String("file", "data/problems.json", "题目 JSON 文件路径")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取题目文件: %v", err)
	}

	var seeds []seedProblem
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatalf("解析题目文件失败: %v", err)
	}

	topicRepo := repository.NewTopicRepository(db)
	problemService := service.NewProblemService(repository.NewProblemRepository(db))

	topics, err := topicRepo.ListActive()
	if err != nil {
		log.Fatalf("读取主题失败: %v", err)
	}
	topicByCode := make(map[string]uint, len(topics))
	for _, t := range topics {
		topicByCode[t.Code] = t.ID
	}

	imported, skipped := 0, 0
	for i, seed := range seeds {
		topicID, ok := topicByCode[seed.TopicCode]
		if !ok {
			log.Printf("第 %d 条：未知主题 %q，跳过", i+1, seed.TopicCode)
			skipped++
			continue
		}

		difficulty := model.DifficultyLevel(seed.DifficultyLevel)
		if difficulty == "" {
			difficulty = model.DifficultyMedium
		}

		options := make([]model.AnswerOption, 0, len(seed.Options))
		for _, o := range seed.Options {
			options = append(options, model.AnswerOption{
				OptionLetter:   o.OptionLetter,
				AnswerText:     o.AnswerText,
				AnswerImageURL: o.AnswerImageURL,
				IsCorrect:      o.IsCorrect,
			})
		}

		problem := &model.Problem{
			TopicAreaID:      topicID,
			Title:            seed.Title,
			QuestionText:     seed.QuestionText,
			QuestionImageURL: seed.QuestionImageURL,
			DifficultyLevel:  difficulty,
			Year:             seed.Year,
			ProblemNumber:    seed.ProblemNumber,
			IsActive:         true,
			Options:          options,
		}

		if err := problemService.CreateProblem(problem); err != nil {
			log.Printf("第 %d 条（%s）导入失败: %v", i+1, seed.Title, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("完成：导入 %d 条，跳过 %d 条", imported, skipped)
}
