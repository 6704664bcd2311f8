package services

import (
	"context"
	"fmt"
	"log/slog"

	"goodcents/internal/config"
	"goodcents/internal/core"
	"goodcents/internal/log"
	"goodcents/internal/metrics"
	"goodcents/internal/store"
)

// WeeklyTier is the probability band a weekly event was drawn from.
type WeeklyTier string

const (
	TierNegative      WeeklyTier = "negative"
	TierPositive      WeeklyTier = "positive"
	TierSuperNegative WeeklyTier = "super_negative"
)

// WeeklyEvent is an ambient event that changes the spending balance.
type WeeklyEvent struct {
	Title       string
	Body        string
	IsMoneyOwed bool
	Amount      float64
}

var positiveWeeklyEvents = []WeeklyEvent{
	{"Bonus at Work", "You received an unexpected bonus at work this week!", false, 500},
	{"Unexpected Gift", "A friend gave you a surprise gift just because! You feel grateful.", false, 100},
	{"Health Insurance Refund", "Your health insurance overcharged you, and they issued a refund.", false, 200},
	{"Car Insurance Discount", "Your car insurance gave you a nice discount after you completed a defensive driving course.", false, 100},
	{"Concert Cancelled", "The concert you were looking forward to got canceled due to unforeseen circumstances. Fortunately you received a refund!", false, 90},
	{"Free Coffee", "You received a free coffee at your usual cafe as part of their loyalty program.", false, 5},
	{"WiFi Outage", "Your WiFi service went out for a few days, disrupting your work and entertainment. They gave you $20 as restitution", false, 20},
	{"Surprise Inheritance", "You received an unexpected inheritance from a distant relative!", false, 1500},
	{"Found Money", "You found some money on the street and decided to keep it.", false, 50},
	{"Tax Refund", "You received a tax refund from the government.", false, 300},
	{"Gift Card", "You received a gift card from a store as a thank you for being a loyal customer.", false, 25},
	{"Freelance Job", "You completed a freelance job and got paid for it.", false, 200},
	{"Power Outage", "A power outage in your neighborhood lasts a few days, disrupting your work and home routine. As restitution, you got $100!", false, 100},
	{"Free Meal", "You received a free meal at a restaurant as part of their promotion.", false, 30},
}

var negativeWeeklyEvents = []WeeklyEvent{
	{"Flat Tyre", "You got a flat tyre on your way to work and had to pay for a tow truck.", true, 100},
	{"Accidental Damage", "You accidentally damaged a neighbor's fence while parking your car. They ask for compensation.", true, 150},
	{"Lost Wallet", "You lost your wallet with some cash inside. You cancel your cards to avoid further issues.", true, 50},
	{"Pet Emergency", "Your pet got sick and you had to rush them to the vet.", true, 200},
	{"Traffic Ticket", "You were caught speeding and now have to pay a fine.", true, 60},
	{"Car Accident", "You were involved in a minor accident, and now you’re dealing with insurance paperwork.", true, 150},
	{"Surprise Dinner", "Your partner invited you out for an unexpected dinner at a fancy restaurant.", true, 40},
	{"Annual Checkup", "You went to your yearly health checkup. Luckily, everything is fine.", true, 50},
	{"Movie Night", "You and your friends had a fun movie marathon at home with snacks and drinks. Although you had to pay for all the snacks and drinks", true, 60},
	{"Anniversary Celebration", "You celebrated your friends anniversary, although you had to spend a hefty amount of money on a gift.", true, 80},
	{"Unplanned Road Trip", "You decided to go on a spontaneous road trip and ended up spending a bit more than expected.", true, 250},
	{"Wedding Invitation", "You received an invitation to a friend’s wedding, which means you’ll need to buy a gift.", true, 100},
	{"Rooftop Bar", "You enjoyed a nice evening at a rooftop bar with some friends.", true, 60},
	{"Parking Fine", "You forgot to pay for parking, and now you have a fine to deal with.", true, 40},
}

var superNegativeWeeklyEvents = []WeeklyEvent{
	{"Computer Crash", "Your computer crashed unexpectedly, and you had to replace some components.", true, 400},
	{"Emergency Room Visit", "You had to visit the ER for a minor injury. It wasn’t serious, but the bill was hefty.", true, 500},
	{"Broken Appliance", "Your refrigerator broke down unexpectedly, and you had to replace it.", true, 600},
	{"Home Repairs", "You discovered a leak in your roof that needed immediate repair.", true, 700},
	{"Earthquake Damage", "Your area experienced an earthquake, and your home suffered some damage.", true, 800},
}

// WeeklyEvents returns a copy of the event list for a tier.
func WeeklyEvents(tier WeeklyTier) []WeeklyEvent {
	var src []WeeklyEvent
	switch tier {
	case TierNegative:
		src = negativeWeeklyEvents
	case TierPositive:
		src = positiveWeeklyEvents
	case TierSuperNegative:
		src = superNegativeWeeklyEvents
	}
	return append([]WeeklyEvent(nil), src...)
}

// SignedAmount is negative when money is owed.
func (e WeeklyEvent) SignedAmount() float64 {
	if e.IsMoneyOwed {
		return -e.Amount
	}
	return e.Amount
}

// DrawWeeklyEvent picks a tier by u < negativeCutoff, u < positiveCutoff,
// otherwise super-negative, then an event of that tier uniformly.
func DrawWeeklyEvent(r Rand, negativeCutoff, positiveCutoff float64) (WeeklyEvent, WeeklyTier) {
	u := r.Float64()
	tier := TierSuperNegative
	switch {
	case u < negativeCutoff:
		tier = TierNegative
	case u < positiveCutoff:
		tier = TierPositive
	}
	list := WeeklyEvents(tier)
	return list[r.IntN(len(list))], tier
}

// WeeklyEventService applies ambient weekly events to the spending account.
type WeeklyEventService struct {
	store   store.Store
	clock   Clock
	rules   config.Rules
	rand    Rand
	metrics *metrics.Recorder
}

func NewWeeklyEventService(st store.Store, clock Clock, rules config.Rules, r Rand, m *metrics.Recorder) *WeeklyEventService {
	return &WeeklyEventService{
		store:   st,
		clock:   clock,
		rules:   rules,
		rand:    r,
		metrics: m,
	}
}

// Trigger draws and commits a weekly event. It returns nil when the trigger
// chance did not fire.
func (s *WeeklyEventService) Trigger(ctx context.Context) (*core.WeeklyEventResult, error) {
	var (
		res    *core.WeeklyEventResult
		player core.Player
		j      *journal
	)
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		j = newJournal(tx, s.clock)
		var err error
		res, player, err = s.apply(ctx, tx, j)
		return err
	})
	if err != nil {
		s.metrics.OperationFailed("weekly_event")
		return nil, fmt.Errorf("weekly event: %w", err)
	}
	s.committed(ctx, res, player, j.entries)
	return res, nil
}

func (s *WeeklyEventService) committed(ctx context.Context, res *core.WeeklyEventResult, player core.Player, entries []core.Transaction) {
	if res == nil {
		slog.DebugContext(ctx, "No weekly event this week")
		return
	}
	s.metrics.WeeklyEvent(res.Tier)
	observe(s.metrics, player, entries)
	slog.InfoContext(ctx, "Weekly event applied",
		log.FieldTier, res.Tier,
		"title", res.Title,
		log.FieldAmount, res.SignedAmount(),
		log.FieldBalance, res.BalanceAfter)
}

// apply runs the draw against tx. The balance snapshot is taken after the
// spending account has been changed.
func (s *WeeklyEventService) apply(ctx context.Context, tx store.Store, j *journal) (*core.WeeklyEventResult, core.Player, error) {
	p, err := loadPlayer(ctx, tx)
	if err != nil {
		return nil, core.Player{}, err
	}
	if s.rand.Float64() >= s.rules.WeeklyEventChance {
		return nil, p, nil
	}

	e, tier := DrawWeeklyEvent(s.rand, s.rules.NegativeEventCutoff, s.rules.PositiveEventCutoff)
	balance := p.Adjust(core.Spending, e.SignedAmount())
	if err := tx.SavePlayer(ctx, p); err != nil {
		return nil, core.Player{}, fmt.Errorf("save player: %w", err)
	}
	if err := j.record(ctx, core.Spending, e.Title, e.SignedAmount(), balance); err != nil {
		return nil, core.Player{}, err
	}

	return &core.WeeklyEventResult{
		Tier:         string(tier),
		Title:        e.Title,
		Body:         e.Body,
		IsMoneyOwed:  e.IsMoneyOwed,
		Amount:       e.Amount,
		BalanceAfter: balance,
	}, p, nil
}
