package gorm

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// Ensure MicroclimatesStore implements store.MicroclimatesStore
var _ store.MicroclimatesStore = (*MicroclimatesStore)(nil)

// MicroclimatesStore implements store.MicroclimatesStore using GORM
type MicroclimatesStore struct {
	db *gorm.DB
}

// NewMicroclimatesStore creates a new MicroclimatesStore
func NewMicroclimatesStore(db *gorm.DB) *MicroclimatesStore {
	return &MicroclimatesStore{db: db}
}

// ListMicroclimates returns a page of a company's microclimates
func (s *MicroclimatesStore) ListMicroclimates(companyID, status string, limit, offset int) ([]model.Microclimate, int, error) {
	query := s.db.Model(&model.Microclimate{}).Where("company_id = ?", companyID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var microclimates []model.Microclimate
	if err := query.Order("created_at desc").Find(&microclimates).Error; err != nil {
		return nil, 0, err
	}

	return microclimates, int(total), nil
}

// FetchMicroclimate retrieves a microclimate by ID
func (s *MicroclimatesStore) FetchMicroclimate(id string) (*model.Microclimate, error) {
	var microclimate model.Microclimate
	tx := s.db.Where("id = ?", id).First(&microclimate)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrMicroclimateNotFound
		}
		return nil, tx.Error
	}
	return &microclimate, nil
}

// FetchMicroclimateQuestions returns the questions in order
func (s *MicroclimatesStore) FetchMicroclimateQuestions(microclimateID string) ([]model.MicroclimateQuestion, error) {
	var questions []model.MicroclimateQuestion
	if err := s.db.Where("microclimate_id = ?", microclimateID).Order("order_index").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// CreateMicroclimate persists a microclimate with its questions
func (s *MicroclimatesStore) CreateMicroclimate(microclimate *model.Microclimate, questions []model.MicroclimateQuestion) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(microclimate).Error; err != nil {
			return err
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateMicroclimateStatus transitions the lifecycle status
func (s *MicroclimatesStore) UpdateMicroclimateStatus(id, status string, expiresAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if expiresAt != nil {
		updates["expires_at"] = *expiresAt
	}

	tx := s.db.Model(&model.Microclimate{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrMicroclimateNotFound
	}
	return nil
}

// SaveMicroclimateAnswers persists a batch of answers atomically
func (s *MicroclimatesStore) SaveMicroclimateAnswers(answers []model.MicroclimateAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return s.db.Create(&answers).Error
}

// Results computes the live aggregation of a microclimate
func (s *MicroclimatesStore) Results(microclimateID string) (*store.MicroclimateResults, error) {
	microclimate, err := s.FetchMicroclimate(microclimateID)
	if err != nil {
		return nil, err
	}

	questions, err := s.FetchMicroclimateQuestions(microclimateID)
	if err != nil {
		return nil, err
	}

	var answers []model.MicroclimateAnswer
	if err := s.db.Where("microclimate_id = ?", microclimateID).Find(&answers).Error; err != nil {
		return nil, err
	}

	byQuestion := make(map[string][]model.MicroclimateAnswer)
	participants := make(map[string]struct{})
	anonymous := make(map[string]int)
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
		if a.UserID != nil {
			participants[*a.UserID] = struct{}{}
		} else {
			anonymous[a.QuestionID]++
		}
	}

	// Anonymous answers carry no identity; the best available estimate
	// is the largest anonymous answer count on any single question.
	maxAnonymous := 0
	for _, n := range anonymous {
		if n > maxAnonymous {
			maxAnonymous = n
		}
	}

	results := &store.MicroclimateResults{
		MicroclimateID: microclimateID,
		Status:         microclimate.Status,
		Participants:   len(participants) + maxAnonymous,
		Questions:      make([]store.QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		results.Questions = append(results.Questions, aggregateQuestion(q, byQuestion[q.ID]))
	}

	return results, nil
}

func aggregateQuestion(q model.MicroclimateQuestion, answers []model.MicroclimateAnswer) store.QuestionResult {
	result := store.QuestionResult{
		QuestionID:    q.ID,
		Text:          q.Text,
		QuestionType:  q.QuestionType,
		ResponseCount: len(answers),
	}

	switch q.QuestionType {
	case "rating", "scale":
		sum, n := 0, 0
		for _, a := range answers {
			if a.Rating != nil {
				sum += *a.Rating
				n++
			}
		}
		if n > 0 {
			avg := float64(sum) / float64(n)
			result.AverageRating = &avg
		}
	case "binary", "choice":
		counts := make(map[string]int)
		for _, a := range answers {
			if a.Value != "" {
				counts[a.Value]++
			}
		}
		result.Counts = counts
	default:
		result.TopWords = topWords(answers, 10)
	}

	return result
}

var wordRgx = regexp.MustCompile(`[\p{L}\p{N}]+`)

// stopWords excludes filler from the word cloud
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "has": {}, "have": {},
	"was": {}, "with": {}, "that": {}, "this": {}, "from": {}, "they": {},
	"very": {}, "our": {}, "out": {}, "too": {}, "its": {}, "there": {},
	"what": {}, "when": {}, "would": {}, "could": {}, "more": {},
}

func topWords(answers []model.MicroclimateAnswer, n int) []store.WordCount {
	counts := make(map[string]int)
	for _, a := range answers {
		for _, word := range wordRgx.FindAllString(strings.ToLower(a.Value), -1) {
			if len(word) < 3 {
				continue
			}
			if _, skip := stopWords[word]; skip {
				continue
			}
			counts[word]++
		}
	}

	words := make([]store.WordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, store.WordCount{Word: word, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}
