package services

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/store"
)

var (
	ErrInvalidMessageBody   = errors.New("invalid message body")
	ErrInvalidMessageAuthor = errors.New("invalid message author")
	ErrMessageNotFound      = errors.New("message not found")
)

const maxMessageBodyLength = 4000

type CoachMessageStores interface {
	For(userID string) *store.RecordStore[models.CoachMessage]
}

// MessageService manages the coach message thread of each user.
type MessageService struct {
	threads CoachMessageStores
	now     func() time.Time
	newID   func() string
}

func NewMessageService(threads CoachMessageStores) *MessageService {
	return &MessageService{
		threads: threads,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (service *MessageService) PostMessage(userID string, author string, body string) (models.CoachMessage, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return models.CoachMessage{}, ErrInvalidMessageAuthor
	}
	body, err := normalizeMessageBody(body)
	if err != nil {
		return models.CoachMessage{}, err
	}

	message := models.CoachMessage{
		ID:     service.newID(),
		UserID: userID,
		Author: author,
		Body:   body,
		Date:   service.now(),
		IsRead: false,
	}
	service.threads.For(userID).Add(message)
	return message, nil
}

func (service *MessageService) MarkRead(userID string, messageID string) error {
	found := service.threads.For(userID).Update(messageID, func(message *models.CoachMessage) {
		message.IsRead = true
	})
	if !found {
		return ErrMessageNotFound
	}
	return nil
}

func (service *MessageService) EditMessage(userID string, messageID string, body string) (models.CoachMessage, error) {
	body, err := normalizeMessageBody(body)
	if err != nil {
		return models.CoachMessage{}, err
	}
	thread := service.threads.For(userID)
	if !thread.Update(messageID, func(message *models.CoachMessage) { message.Body = body }) {
		return models.CoachMessage{}, ErrMessageNotFound
	}
	message, _ := thread.Find(messageID)
	return message, nil
}

func (service *MessageService) DeleteMessage(userID string, messageID string) error {
	if !service.threads.For(userID).Delete(messageID) {
		return ErrMessageNotFound
	}
	return nil
}

// ListMessages returns the thread newest first.
func (service *MessageService) ListMessages(userID string) []models.CoachMessage {
	messages := service.threads.For(userID).All()
	slices.SortStableFunc(messages, func(left, right models.CoachMessage) int {
		return right.Date.Compare(left.Date)
	})
	return messages
}

func (service *MessageService) UnreadCount(userID string) int {
	count := 0
	for _, message := range service.threads.For(userID).All() {
		if !message.IsRead {
			count++
		}
	}
	return count
}

func normalizeMessageBody(raw string) (string, error) {
	body := strings.TrimSpace(raw)
	if body == "" || len([]rune(body)) > maxMessageBodyLength {
		return "", ErrInvalidMessageBody
	}
	return body, nil
}
