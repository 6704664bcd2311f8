package core

import (
	"fmt"
	"strings"
)

// ActionType is the kind of response an interactive event offers.
type ActionType string

const (
	ActionPurchase ActionType = "purchase"
	ActionTransfer ActionType = "transfer"
	ActionDismiss  ActionType = "dismiss"
)

// AmountPlaceholder is replaced in outcome templates with the formatted
// transfer amount.
const AmountPlaceholder = "${amount}"

type (
	EventGroup struct {
		ID          int                `json:"id"`
		WealthClass []WealthClass      `json:"wealthClass"`
		Events      []InteractiveEvent `json:"events"`
	}

	InteractiveEvent struct {
		ID          int      `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Actions     []Action `json:"actions"`
	}

	Action struct {
		ID       int           `json:"id"`
		Title    string        `json:"title"`
		Type     ActionType    `json:"type"`
		Amount   *float64      `json:"amount,omitempty"`
		Item     *Item         `json:"item,omitempty"`
		Transfer *TransferSpec `json:"transfer,omitempty"`
		Outcome  string        `json:"outcome"`
	}

	Item struct {
		ID         int     `json:"id"`
		Name       string  `json:"name"`
		Icon       string  `json:"icon"`
		Price      float64 `json:"price"`
		Value      float64 `json:"value"`
		IsSellable bool    `json:"isSellable"`
	}

	TransferSpec struct {
		ID                     int      `json:"id"`
		SourceAccountIcon      string   `json:"sourceAccountIcon"`
		DestinationAccountIcon string   `json:"destinationAccountIcon"`
		SourceAccount          Account  `json:"sourceAccount"`
		DestinationAccount     Account  `json:"destinationAccount"`
		MinAmount              float64  `json:"minAmount"`
		MaxAmount              *float64 `json:"maxAmount,omitempty"`
	}

	LessonSection struct {
		ID      int      `json:"id"`
		Title   string   `json:"title"`
		Lessons []Lesson `json:"lessons"`
	}

	Lesson struct {
		ID          int        `json:"id"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Pages       []Page     `json:"pages"`
		Questions   []Question `json:"questions"`
	}

	Page struct {
		ID      int    `json:"id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}

	Question struct {
		ID       int      `json:"id"`
		Question string   `json:"question"`
		Answers  []Answer `json:"answers"`
	}

	Answer struct {
		ID        int    `json:"id"`
		Answer    string `json:"answer"`
		IsCorrect bool   `json:"isCorrect"`
	}
)

// NoEvent is returned when no interactive event is eligible.
var NoEvent = InteractiveEvent{ID: 0, Name: "No events found", Description: "No events found"}

func (e InteractiveEvent) IsNone() bool {
	return e.ID == NoEvent.ID && e.Name == NoEvent.Name
}

// Price returns the purchase price of the action and whether it has one.
func (a Action) Price() (float64, bool) {
	if a.Item != nil {
		return a.Item.Price, true
	}
	if a.Amount != nil {
		return *a.Amount, true
	}
	return 0, false
}

// Includes reports whether the group targets the wealth class.
func (g EventGroup) Includes(w WealthClass) bool {
	for _, c := range g.WealthClass {
		if c == w {
			return true
		}
	}
	return false
}

func (g EventGroup) Validate() error {
	if len(g.WealthClass) == 0 {
		return fmt.Errorf("event group %d: no wealth class", g.ID)
	}
	for _, w := range g.WealthClass {
		if !w.Valid() {
			return fmt.Errorf("event group %d: unknown wealth class %q", g.ID, w)
		}
	}
	for _, e := range g.Events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event group %d: %w", g.ID, err)
		}
	}
	return nil
}

func (e InteractiveEvent) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("event %d: empty name", e.ID)
	}
	if len(e.Actions) == 0 {
		return fmt.Errorf("event %d: no actions", e.ID)
	}
	for _, a := range e.Actions {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", e.ID, err)
		}
	}
	return nil
}

func (a Action) Validate() error {
	switch a.Type {
	case ActionPurchase:
		if a.Item != nil && a.Item.Price <= 0 {
			return fmt.Errorf("action %d: item price must be positive", a.ID)
		}
		if a.Item == nil && a.Amount != nil && *a.Amount <= 0 {
			return fmt.Errorf("action %d: purchase amount must be positive", a.ID)
		}
	case ActionTransfer:
		t := a.Transfer
		if t == nil {
			return fmt.Errorf("action %d: transfer payload missing", a.ID)
		}
		if !t.SourceAccount.Valid() || !t.DestinationAccount.Valid() {
			return fmt.Errorf("action %d: unknown transfer account", a.ID)
		}
		if t.MinAmount < 0 {
			return fmt.Errorf("action %d: negative minimum amount", a.ID)
		}
		if t.MaxAmount != nil && *t.MaxAmount < t.MinAmount {
			return fmt.Errorf("action %d: maximum below minimum", a.ID)
		}
	case ActionDismiss:
	default:
		return fmt.Errorf("action %d: unknown type %q", a.ID, a.Type)
	}
	return nil
}

func (l Lesson) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("lesson %d: empty title", l.ID)
	}
	for _, q := range l.Questions {
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("lesson %d question %d: %d correct answers, want 1", l.ID, q.ID, correct)
		}
	}
	return nil
}
