package duel

// EventType identifies a duel event.
type EventType string

const (
	EventTypeActionTaken EventType = "action_taken"
	EventTypeTurnChanged EventType = "turn_changed"
	EventTypeDrawOpen    EventType = "draw_open"
	EventTypeCardsDrawn  EventType = "cards_drawn"
	EventTypeHandSettled EventType = "hand_settled"
	EventTypeHandStarted EventType = "hand_started"
	EventTypeMatchEnded  EventType = "match_ended"
)

// Event is something that happened while reducing an action. The engine maps
// events to notifications and the websocket feed; the reducer itself never
// performs I/O.
type Event interface {
	EventType() EventType
}

// ActionTakenEvent records a betting action that was applied.
type ActionTakenEvent struct {
	Actor  string `json:"actor"`
	Action Action `json:"action"`
	Amount int    `json:"amount,omitempty"`
	Pot    int    `json:"pot"`
}

func (ActionTakenEvent) EventType() EventType { return EventTypeActionTaken }

// TurnChangedEvent signals that a participant's action is now due. This is
// the event the engine turns into a notification.
type TurnChangedEvent struct {
	Actor string `json:"actor"`
	Phase Phase  `json:"phase"`
}

func (TurnChangedEvent) EventType() EventType { return EventTypeTurnChanged }

// DrawOpenEvent signals the first betting round closed and the named
// participant may now discard up to three cards.
type DrawOpenEvent struct {
	Actor string `json:"actor"`
}

func (DrawOpenEvent) EventType() EventType { return EventTypeDrawOpen }

// CardsDrawnEvent records a completed discard/draw.
type CardsDrawnEvent struct {
	Actor     string `json:"actor"`
	Discarded int    `json:"discarded"`
	Drawn     int    `json:"drawn"`
}

func (CardsDrawnEvent) EventType() EventType { return EventTypeCardsDrawn }

// SettleReason describes how a hand ended.
type SettleReason string

const (
	SettleFold     SettleReason = "fold"
	SettleShowdown SettleReason = "showdown"
	SettleTie      SettleReason = "tie"
)

// HandSettledEvent records the settlement of one hand. Winner is empty when
// the pot was split on a tie.
type HandSettledEvent struct {
	HandNum  int          `json:"hand"`
	Winner   string       `json:"winner,omitempty"`
	Amount   int          `json:"amount"`
	Reason   SettleReason `json:"reason"`
	Category string       `json:"category,omitempty"`
}

func (HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// HandStartedEvent records a fresh deal.
type HandStartedEvent struct {
	HandNum int `json:"hand"`
}

func (HandStartedEvent) EventType() EventType { return EventTypeHandStarted }

// MatchEndedEvent records the final outcome. Draw is true when both stacks
// finished level; Winner is empty in that case.
type MatchEndedEvent struct {
	Winner     string         `json:"winner,omitempty"`
	Draw       bool           `json:"draw,omitempty"`
	FinalChips map[string]int `json:"final_chips"`
}

func (MatchEndedEvent) EventType() EventType { return EventTypeMatchEnded }
