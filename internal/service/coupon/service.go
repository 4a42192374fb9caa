// Package coupon implements the gamified discount mechanics: spin wheel,
// jackpot, and lucky scratch, plus coupon validation at checkout.
package coupon

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Game identifiers.
const (
	GameSpin    = "spin"
	GameJackpot = "jackpot"
	GameScratch = "scratch"
)

// All games share the same minimum order for redeeming a won code.
const MinOrderAmount = 50_000

type game struct {
	code     string
	discount float64
	winProb  float64
	winMsg   string
	loseMsg  string
}

var games = map[string]game{
	GameSpin: {
		code: "GAME1000", discount: 1000, winProb: 0.15,
		winMsg:  "Congratulations! Use code GAME1000 for ₹1,000 off on orders above ₹50,000.",
		loseMsg: "Better luck next time! Try again on your next visit.",
	},
	GameJackpot: {
		code: "JACKPOT2K", discount: 2000, winProb: 0.05,
		winMsg:  "Jackpot! Use code JACKPOT2K for ₹2,000 off on orders above ₹50,000.",
		loseMsg: "Better luck next time! Try Jackpot again on your next visit.",
	},
	GameScratch: {
		code: "SCRATCH500", discount: 500, winProb: 0.25,
		winMsg:  "You won! Use code SCRATCH500 for ₹500 off on orders above ₹50,000.",
		loseMsg: "Better luck next time! Try again on your next visit.",
	},
}

// Result is the outcome of one play. Won/Code drive the game visuals; the
// client only picks an index from the server-provided flag.
type Result struct {
	Game     string  `json:"game"`
	Played   bool    `json:"played"`
	Won      bool    `json:"won"`
	Code     string  `json:"code,omitempty"`
	MinOrder float64 `json:"min_order"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

// Validation is the outcome of a coupon check at checkout.
type Validation struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"`
	Reason   string  `json:"reason,omitempty"`
}

// Service tracks one play per game per session. roll is injectable for tests.
type Service struct {
	mu     sync.Mutex
	played map[string]map[string]bool // game -> session id -> played
	roll   func() float64
}

// NewService builds the game service with the default randomness source.
func NewService() *Service {
	return &Service{
		played: make(map[string]map[string]bool),
		roll:   rand.Float64,
	}
}

// NewServiceWithRoll injects the win roll, used by tests to force outcomes.
func NewServiceWithRoll(roll func() float64) *Service {
	s := NewService()
	s.roll = roll
	return s
}

// Play runs one round of the named game for a session. A session gets one
// play per game; replays report played=true with no win.
func (s *Service) Play(name, sessionID string) (Result, error) {
	g, ok := games[name]
	if !ok {
		return Result{}, fmt.Errorf("unknown game %q", name)
	}

	res := Result{Game: name, MinOrder: MinOrderAmount, Discount: g.discount}
	if sessionID == "" {
		res.Message = "A session is required to play."
		return res, nil
	}

	s.mu.Lock()
	sessions, ok := s.played[name]
	if !ok {
		sessions = make(map[string]bool)
		s.played[name] = sessions
	}
	if sessions[sessionID] {
		s.mu.Unlock()
		res.Played = true
		res.Message = "You've already played. One play per visit!"
		return res, nil
	}
	sessions[sessionID] = true
	won := s.roll() < g.winProb
	s.mu.Unlock()

	res.Played = true
	res.Won = won
	if won {
		res.Code = g.code
		res.Message = g.winMsg
	} else {
		res.Message = g.loseMsg
	}
	return res, nil
}

// Validate checks a coupon code against an order total.
func (s *Service) Validate(code string, orderTotal float64) Validation {
	c := strings.ToUpper(strings.TrimSpace(code))
	for _, g := range games {
		if g.code != c {
			continue
		}
		if orderTotal < MinOrderAmount {
			return Validation{Reason: fmt.Sprintf("Order total must be at least ₹%d", MinOrderAmount)}
		}
		return Validation{Valid: true, Discount: g.discount}
	}
	return Validation{Reason: "Unknown coupon code"}
}
