package repo

import (
	"strings"

	"foodcycle/pkg/domain"
)

// RecordMessage appends a message to the shared log, tagged with the
// derived conversation id and sender role.
func (r *Repository) RecordMessage(conversationID string, from domain.Role, senderName, text string) error {
	messages := append(r.Messages(), domain.Message{
		ConversationID: conversationID,
		From:           from,
		SenderName:     senderName,
		Text:           strings.TrimSpace(text),
		CreatedAt:      r.now(),
	})
	if err := r.writeList(domain.CollectionMessages, messages); err != nil {
		return err
	}
	r.schedulePush()
	return nil
}

// MessagesFor returns one conversation's messages in append order, which
// is chronological order.
func (r *Repository) MessagesFor(conversationID string) []domain.Message {
	var matched []domain.Message
	for _, m := range r.Messages() {
		if m.ConversationID == conversationID {
			matched = append(matched, m)
		}
	}
	return matched
}
