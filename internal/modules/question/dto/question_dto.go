package dto

import "github.com/quizbase/quizbase/internal/entity"

type CreateTopicRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Icon string `json:"icon" binding:"required,max=50"`
}

type CreateSubtopicRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	TopicID uint   `json:"topicId" binding:"required"`
}

type QuestionRequest struct {
	Question       string `json:"question" binding:"required"`
	QuickAnswer    string `json:"quickAnswer" binding:"required"`
	DetailedAnswer string `json:"detailedAnswer" binding:"required"`
	CodeExample    string `json:"codeExample" binding:"required"`
	SubtopicID     uint   `json:"subtopicId"`
}

type TopicResponse struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	Icon      string             `json:"icon"`
	Subtopics []SubtopicResponse `json:"subtopics"`
}

type SubtopicResponse struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	Questions []QuestionResponse `json:"questions"`
}

type QuestionResponse struct {
	ID             uint   `json:"id"`
	Question       string `json:"question"`
	QuickAnswer    string `json:"quickAnswer"`
	DetailedAnswer string `json:"detailedAnswer"`
	CodeExample    string `json:"codeExample"`
	TopicName      string `json:"topicName"`
	SubtopicName   string `json:"subtopicName"`
	CreatedBy      string `json:"createdBy"`
}

// FromTopic builds the nested topic tree; associations must be preloaded.
func FromTopic(t *entity.Topic) TopicResponse {
	subtopics := make([]SubtopicResponse, 0, len(t.Subtopics))
	for i := range t.Subtopics {
		subtopics = append(subtopics, FromSubtopic(&t.Subtopics[i], t.Name))
	}
	return TopicResponse{
		ID:        t.ID,
		Name:      t.Name,
		Icon:      t.Icon,
		Subtopics: subtopics,
	}
}

func FromSubtopic(s *entity.Subtopic, topicName string) SubtopicResponse {
	questions := make([]QuestionResponse, 0, len(s.Questions))
	for i := range s.Questions {
		questions = append(questions, fromQuestionNested(&s.Questions[i], topicName, s.Name))
	}
	return SubtopicResponse{
		ID:        s.ID,
		Name:      s.Name,
		Questions: questions,
	}
}

// FromQuestion expects Subtopic.Topic and CreatedBy to be preloaded.
func FromQuestion(q *entity.Question) QuestionResponse {
	var topicName, subtopicName string
	if q.Subtopic != nil {
		subtopicName = q.Subtopic.Name
		if q.Subtopic.Topic != nil {
			topicName = q.Subtopic.Topic.Name
		}
	}
	return fromQuestionNested(q, topicName, subtopicName)
}

func fromQuestionNested(q *entity.Question, topicName, subtopicName string) QuestionResponse {
	var createdBy string
	if q.CreatedBy != nil {
		createdBy = q.CreatedBy.Username
	}
	return QuestionResponse{
		ID:             q.ID,
		Question:       q.Question,
		QuickAnswer:    q.QuickAnswer,
		DetailedAnswer: q.DetailedAnswer,
		CodeExample:    q.CodeExample,
		TopicName:      topicName,
		SubtopicName:   subtopicName,
		CreatedBy:      createdBy,
	}
}
