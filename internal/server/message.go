package server

import "github.com/pokerduel/pokerduel/internal/duel"

// Message is the envelope sent to websocket watchers of a match. The payload
// is one of the duel event types; hands are never carried over the feed.
type Message struct {
	Type    duel.EventType `json:"type"`
	MatchID string         `json:"match_id"`
	Event   duel.Event     `json:"event"`
}

func messagesFromEvents(matchID string, events []duel.Event) []*Message {
	out := make([]*Message, 0, len(events))
	for _, ev := range events {
		out = append(out, &Message{
			Type:    ev.EventType(),
			MatchID: matchID,
			Event:   ev,
		})
	}
	return out
}
