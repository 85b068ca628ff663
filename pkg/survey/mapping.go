package survey

import (
	"sort"

	"github.com/google/uuid"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// Canonical survey types
const (
	TypeGeneralClimate = "general_climate"
	TypeWellbeing      = "wellbeing"
	TypeLeadership     = "leadership"
	TypeOnboarding     = "onboarding"
	TypeExit           = "exit"
	TypeCustom         = "custom"
)

// Canonical question types
const (
	QuestionRating = "rating"
	QuestionScale  = "scale"
	QuestionBinary = "binary"
	QuestionChoice = "choice"
	QuestionText   = "text"
)

// categoryToType maps template library categories to survey types.
// Unknown categories fall back to TypeCustom.
var categoryToType = map[string]string{
	"engagement":    TypeGeneralClimate,
	"climate":       TypeGeneralClimate,
	"culture":       TypeGeneralClimate,
	"wellbeing":     TypeWellbeing,
	"work_life":     TypeWellbeing,
	"leadership":    TypeLeadership,
	"management":    TypeLeadership,
	"onboarding":    TypeOnboarding,
	"exit":          TypeExit,
	"communication": TypeGeneralClimate,
}

// questionTypeMap maps template question types to the canonical survey
// vocabulary. Unknown types fall back to QuestionText.
var questionTypeMap = map[string]string{
	"emoji_rating":    QuestionRating,
	"star_rating":     QuestionRating,
	"rating":          QuestionRating,
	"likert":          QuestionScale,
	"scale":           QuestionScale,
	"nps":             QuestionScale,
	"yes_no":          QuestionBinary,
	"binary":          QuestionBinary,
	"multiple_choice": QuestionChoice,
	"single_choice":   QuestionChoice,
	"dropdown":        QuestionChoice,
	"open_text":       QuestionText,
	"text":            QuestionText,
	"comment":         QuestionText,
}

// TypeForCategory returns the survey type for a template category
func TypeForCategory(category string) string {
	if t, ok := categoryToType[category]; ok {
		return t
	}
	return TypeCustom
}

// CanonicalQuestionType returns the canonical question type for a
// template question type
func CanonicalQuestionType(templateType string) string {
	if t, ok := questionTypeMap[templateType]; ok {
		return t
	}
	return QuestionText
}

// BuildQuestions instantiates survey questions from template questions.
// Question types are mapped to the canonical vocabulary and the
// binary-comment config is carried over. Questions with an explicit order
// index keep it; questions without one are backfilled sequentially after
// the largest explicit index, in their original order.
func BuildQuestions(surveyID string, templateQuestions []model.TemplateQuestion) []model.SurveyQuestion {
	maxIndex := 0
	for _, tq := range templateQuestions {
		if tq.OrderIndex != nil && *tq.OrderIndex > maxIndex {
			maxIndex = *tq.OrderIndex
		}
	}

	questions := make([]model.SurveyQuestion, 0, len(templateQuestions))
	next := maxIndex + 1
	for _, tq := range templateQuestions {
		index := next
		if tq.OrderIndex != nil {
			index = *tq.OrderIndex
		} else {
			next++
		}

		questions = append(questions, model.SurveyQuestion{
			ID:              uuid.NewString(),
			SurveyID:        surveyID,
			Text:            tq.Text,
			QuestionType:    CanonicalQuestionType(tq.QuestionType),
			Options:         tq.Options,
			OrderIndex:      index,
			Required:        tq.Required,
			CommentEnabled:  tq.CommentEnabled,
			CommentRequired: tq.CommentRequired,
			CommentMinLen:   tq.CommentMinLen,
			CommentMaxLen:   tq.CommentMaxLen,
		})
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].OrderIndex < questions[j].OrderIndex
	})

	return questions
}
