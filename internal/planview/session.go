package planview

import (
	"fmt"
	"sync"
	"time"

	"github.com/fortranov/sportproject/internal/training"

	log "github.com/sirupsen/logrus"
)

// LoadTicket identifies one plan load started by BeginLoad.
type LoadTicket struct {
	seq uint64
}

// Session is the state of a single plan screen: the loaded plan and the
// displayed calendar month. Only the result of the latest load is applied.
type Session struct {
	nowFunc func() time.Time

	mu      sync.Mutex
	loadSeq uint64
	view    *View
	month   training.Date
}

func NewSession(nowFunc func() time.Time) *Session {
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return &Session{
		nowFunc: nowFunc,
		month:   training.MonthStart(training.DateOf(nowFunc())),
	}
}

// BeginLoad starts a new load, making every earlier ticket stale.
func (s *Session) BeginLoad() LoadTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadSeq++
	return LoadTicket{seq: s.loadSeq}
}

// Apply installs the plan fetched for ticket and resets the displayed month
// to the current one. A stale ticket is ignored and Apply returns false.
func (s *Session) Apply(ticket LoadTicket, plan *training.TrainingPlan) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket.seq != s.loadSeq {
		log.Debugf("plan session: dropping late response of load %d, latest is %d", ticket.seq, s.loadSeq)
		return false, nil
	}

	view, err := New(plan)
	if err != nil {
		return false, err
	}
	s.view = view
	s.month = training.MonthStart(training.DateOf(s.nowFunc()))
	return true, nil
}

// Clear drops the loaded plan, e.g. after it was deleted. Pending loads become stale.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadSeq++
	s.view = nil
}

func (s *Session) View() (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		return nil, fmt.Errorf("no plan loaded: %w", training.ErrNotFound)
	}
	return s.view, nil
}

func (s *Session) Month() training.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.month
}

func (s *Session) PrevMonth() training.Date {
	return s.shiftMonth(-1)
}

func (s *Session) NextMonth() training.Date {
	return s.shiftMonth(1)
}

func (s *Session) shiftMonth(n int) training.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.month = s.month.AddMonths(n)
	return s.month
}

// Grid renders the displayed month of the loaded plan.
func (s *Session) Grid() (MonthView, error) {
	view, err := s.View()
	if err != nil {
		return MonthView{}, err
	}
	return view.Grid(s.Month(), s.nowFunc())
}

func (s *Session) Summary() (Summary, error) {
	view, err := s.View()
	if err != nil {
		return Summary{}, err
	}
	return view.Summary(s.nowFunc())
}

func (s *Session) Chart() (Chart, error) {
	view, err := s.View()
	if err != nil {
		return Chart{}, err
	}
	return view.Chart(), nil
}
