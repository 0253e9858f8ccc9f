package model

// DifficultyLevel 题目难度
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Problem 题库中的一道选择题，核心侧只读
// swagger:model Problem
type Problem struct {
	BaseModel
	TopicAreaID      uint            `gorm:"index;type:bigint unsigned" json:"topicAreaId"`
	Title            string          `gorm:"size:255;not null" json:"title"`
	QuestionText     string          `gorm:"type:text;not null" json:"questionText"`
	QuestionImageURL string          `gorm:"size:255" json:"questionImageUrl,omitempty"`
	DifficultyLevel  DifficultyLevel `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficultyLevel"`
	Year             int             `gorm:"default:0" json:"year"`
	ProblemNumber    int             `gorm:"default:0" json:"problemNumber"`
	IsActive         bool            `gorm:"default:true" json:"isActive"`
	Options          []AnswerOption  `gorm:"foreignKey:ProblemID" json:"options"`
}

func (Problem) TableName() string {
	return "problems"
}

// CorrectOption 返回正确选项，题库保证每题恰好一个
func (p *Problem) CorrectOption() *AnswerOption {
	for i := range p.Options {
		if p.Options[i].IsCorrect {
			return &p.Options[i]
		}
	}
	return nil
}

// FindOption 按 ID 在本题选项中查找，找不到返回 nil
func (p *Problem) FindOption(optionID uint) *AnswerOption {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i]
		}
	}
	return nil
}

// AnswerOption 选择题选项（A–D），恰有一个 is_correct
// swagger:model AnswerOption
type AnswerOption struct {
	BaseModel
	ProblemID      uint   `gorm:"index;type:bigint unsigned" json:"problemId"`
	OptionLetter   string `gorm:"size:1;not null" json:"optionLetter"`
	AnswerText     string `gorm:"type:text;not null" json:"answerText"`
	AnswerImageURL string `gorm:"size:255" json:"answerImageUrl,omitempty"`
	IsCorrect      bool   `gorm:"default:false" json:"isCorrect"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}

// PublicProblem 发给答题客户端的题目视图，选项不携带 is_correct
// swagger:model PublicProblem
type PublicProblem struct {
	ID               uint            `json:"id"`
	TopicAreaID      uint            `json:"topicAreaId"`
	Title            string          `json:"title"`
	QuestionText     string          `json:"questionText"`
	QuestionImageURL string          `json:"questionImageUrl,omitempty"`
	DifficultyLevel  DifficultyLevel `json:"difficultyLevel"`
	Year             int             `json:"year"`
	ProblemNumber    int             `json:"problemNumber"`
	Options          []PublicOption  `json:"options"`
}

// swagger:model PublicOption
type PublicOption struct {
	ID             uint   `json:"id"`
	OptionLetter   string `json:"optionLetter"`
	AnswerText     string `json:"answerText"`
	AnswerImageURL string `json:"answerImageUrl,omitempty"`
}

// ToPublic 剥离正确性标记，答题期间正确答案不出服务端
func (p *Problem) ToPublic() PublicProblem {
	opts := make([]PublicOption, len(p.Options))
	for i, o := range p.Options {
		opts[i] = PublicOption{
			ID:             o.ID,
			OptionLetter:   o.OptionLetter,
			AnswerText:     o.AnswerText,
			AnswerImageURL: o.AnswerImageURL,
		}
	}
	return PublicProblem{
		ID:               p.ID,
		TopicAreaID:      p.TopicAreaID,
		Title:            p.Title,
		QuestionText:     p.QuestionText,
		QuestionImageURL: p.QuestionImageURL,
		DifficultyLevel:  p.DifficultyLevel,
		Year:             p.Year,
		ProblemNumber:    p.ProblemNumber,
		Options:          opts,
	}
}
