// Package comms appends announcements and direct messages to the apartment
// ledger. Both lists are append-only; "latest" is always the last element.
package comms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"society-ledger/internal/domain/society"
)

type Service struct {
	store society.Store
}

func NewService(store society.Store) *Service {
	return &Service{store: store}
}

// SystemAnnouncement builds an announcement with service-supplied text, used
// by other services (expense creation, self-reported payments). System posts
// bypass the manual-post validation since the caller controls the text.
func SystemAnnouncement(author society.Resident, title, message, priority string) society.Announcement {
	return society.Announcement{
		ID:         society.NewID(),
		Title:      title,
		Message:    message,
		Priority:   priority,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		CreatedAt:  time.Now().UTC(),
	}
}

// PostAnnouncement appends a secretary-authored announcement.
func (s *Service) PostAnnouncement(ctx context.Context, apartmentID, authorID, title, message, priority string) (*society.Announcement, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	priority = strings.TrimSpace(priority)
	if priority == "" {
		priority = society.PriorityNormal
	}
	switch priority {
	case society.PriorityNormal, society.PriorityImportant, society.PriorityUrgent:
	default:
		return nil, ErrInvalidPriority
	}

	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	author := apartment.ResidentByID(authorID)
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	if author.Role != society.RoleSecretary {
		return nil, ErrNotSecretary
	}

	announcement := SystemAnnouncement(*author, title, message, priority)
	apartment.Announcements = append(apartment.Announcements, announcement)

	if err := s.store.Save(ctx, apartment); err != nil {
		return nil, err
	}

	return &announcement, nil
}

// Announcements returns the list latest-first for display.
func (s *Service) Announcements(ctx context.Context, apartmentID string) ([]society.Announcement, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	reversed := make([]society.Announcement, 0, len(apartment.Announcements))
	for i := len(apartment.Announcements) - 1; i >= 0; i-- {
		reversed = append(reversed, apartment.Announcements[i])
	}
	return reversed, nil
}

// SendMessage appends a direct message. Empty text or a missing receiver is a
// silent no-op, mirroring a send button pressed with nothing selected.
func (s *Service) SendMessage(ctx context.Context, apartmentID, senderID, receiverID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" || receiverID == "" {
		return nil
	}

	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return err
	}

	sender := apartment.ResidentByID(senderID)
	if sender == nil {
		return ErrSenderNotFound
	}
	if apartment.ResidentByID(receiverID) == nil {
		return ErrReceiverNotFound
	}

	apartment.ChatMessages = append(apartment.ChatMessages, society.ChatMessage{
		ID:         society.NewID(),
		SenderID:   sender.ID,
		SenderName: sender.Name,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	})

	return s.store.Save(ctx, apartment)
}

// Conversation returns every message between the two residents in send
// order. The filter is on the unordered pair, so both sides see the same
// sequence.
func (s *Service) Conversation(ctx context.Context, apartmentID, userID, partnerID string) ([]society.ChatMessage, error) {
	apartment, err := s.store.Get(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	messages := make([]society.ChatMessage, 0)
	for _, m := range apartment.ChatMessages {
		if (m.SenderID == userID && m.ReceiverID == partnerID) ||
			(m.SenderID == partnerID && m.ReceiverID == userID) {
			messages = append(messages, m)
		}
	}
	return messages, nil
}
