package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizbase/quizbase/internal/middleware"
	"github.com/quizbase/quizbase/internal/modules/question/dto"
	"github.com/quizbase/quizbase/internal/modules/question/service"
	"github.com/quizbase/quizbase/pkg/apperror"
	"github.com/quizbase/quizbase/pkg/response"
	"github.com/quizbase/quizbase/pkg/validator"
)

type QuestionHandler struct {
	service service.QuestionService
}

func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

func (h *QuestionHandler) GetTopics(c *gin.Context) {
	topics, err := h.service.GetAllTopics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", topics)
}

// GetAllData serves the single-request bootstrap the frontend uses: the
// entire topic tree with subtopics and questions nested.
func (h *QuestionHandler) GetAllData(c *gin.Context) {
	topics, err := h.service.GetAllTopics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", gin.H{"topics": topics})
}

func (h *QuestionHandler) GetTopicByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	topic, err := h.service.GetTopicByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", topic)
}

func (h *QuestionHandler) GetSubtopics(c *gin.Context) {
	topicID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	subtopics, err := h.service.GetSubtopicsByTopicID(c.Request.Context(), topicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", subtopics)
}

func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	subtopicID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	questions, err := h.service.GetQuestionsBySubtopicID(c.Request.Context(), subtopicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", questions)
}

func (h *QuestionHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		response.Error(c, fmt.Errorf("%w: search term is required", apperror.ErrValidation))
		return
	}

	questions, err := h.service.SearchQuestions(c.Request.Context(), term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", questions)
}

func (h *QuestionHandler) CreateTopic(c *gin.Context) {
	var req dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrValidation, validator.FormatValidationError(err)))
		return
	}

	topic, err := h.service.CreateTopic(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "topic created successfully", topic)
}

func (h *QuestionHandler) CreateSubtopic(c *gin.Context) {
	var req dto.CreateSubtopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrValidation, validator.FormatValidationError(err)))
		return
	}

	subtopic, err := h.service.CreateSubtopic(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "subtopic created successfully", subtopic)
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrValidation, validator.FormatValidationError(err)))
		return
	}
	// subtopicId is optional on update but mandatory here
	if req.SubtopicID == 0 {
		response.Error(c, fmt.Errorf("%w: subtopicId is required", apperror.ErrValidation))
		return
	}

	creator, ok := middleware.AdminUser(c)
	if !ok {
		response.Error(c, apperror.ErrAuthRequired)
		return
	}

	question, err := h.service.CreateQuestion(c.Request.Context(), req, creator)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "question created successfully", question)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrValidation, validator.FormatValidationError(err)))
		return
	}

	question, err := h.service.UpdateQuestion(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "question updated successfully", question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteQuestion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "question deleted successfully", nil)
}

func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", apperror.ErrValidation, name)
	}
	return uint(id), nil
}
